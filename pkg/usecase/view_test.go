package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
	"github.com/approvalforms/formsctl/pkg/usecase"
)

func recordWith(id types.RecordID, employeeID types.EmployeeID, name string, answered map[types.FieldID]string) *model.Record {
	record := model.NewRecord(id, employeeID, name, true)
	for fieldID, value := range answered {
		record.Responses[fieldID] = &model.ResponseCell{
			Value:      value,
			ResponseID: id,
			EmployeeID: employeeID,
		}
	}
	return record
}

func TestFilterRecordsSearch(t *testing.T) {
	records := []*model.Record{
		recordWith("record-a", "1001", "Alice Smith", nil),
		recordWith("record-b", "1002", "Bob Jones", nil),
		recordWith("record-c", "2001", "Carol Smith", nil),
	}

	t.Run("by employee id", func(t *testing.T) {
		rows := usecase.FilterRecords(records, 0, "100", types.FilterModeAll)
		gt.Array(t, rows).Length(2)
	})

	t.Run("by name case-insensitive", func(t *testing.T) {
		rows := usecase.FilterRecords(records, 0, "smith", types.FilterModeAll)
		gt.Array(t, rows).Length(2)
		gt.Value(t, rows[0].Record.EmployeeName).Equal("Alice Smith")
		gt.Value(t, rows[1].Record.EmployeeName).Equal("Carol Smith")
	})

	t.Run("by positional label", func(t *testing.T) {
		rows := usecase.FilterRecords(records, 0, "record 2", types.FilterModeAll)
		gt.Array(t, rows).Length(1)
		gt.Value(t, rows[0].Record.ResponseID).Equal(types.RecordID("record-b"))
	})

	t.Run("no match", func(t *testing.T) {
		rows := usecase.FilterRecords(records, 0, "zzz", types.FilterModeAll)
		gt.Array(t, rows).Length(0)
	})
}

func TestFilterRecordsLabelsStableUnderFiltering(t *testing.T) {
	// Labels come from the position in the unfiltered collection, so
	// hiding records must not renumber the survivors
	records := []*model.Record{
		recordWith("record-a", "1001", "Alice", nil),
		recordWith("record-b", "1002", "Bob", nil),
		recordWith("record-c", "2001", "Carol", nil),
	}

	rows := usecase.FilterRecords(records, 0, "carol", types.FilterModeAll)
	gt.Array(t, rows).Length(1)
	gt.Value(t, rows[0].Label).Equal("record 3")
}

func TestFilterRecordsCompleteness(t *testing.T) {
	records := []*model.Record{
		recordWith("record-a", "1001", "Alice", map[types.FieldID]string{"f1": "x", "f2": "y"}),
		recordWith("record-b", "1002", "Bob", map[types.FieldID]string{"f1": "x"}),
		recordWith("record-c", "2001", "Carol", nil),
	}

	t.Run("complete", func(t *testing.T) {
		rows := usecase.FilterRecords(records, 2, "", types.FilterModeComplete)
		gt.Array(t, rows).Length(1)
		gt.Value(t, rows[0].Record.ResponseID).Equal(types.RecordID("record-a"))
	})

	t.Run("partial", func(t *testing.T) {
		rows := usecase.FilterRecords(records, 2, "", types.FilterModePartial)
		gt.Array(t, rows).Length(1)
		gt.Value(t, rows[0].Record.ResponseID).Equal(types.RecordID("record-b"))
	})

	t.Run("all includes empty", func(t *testing.T) {
		rows := usecase.FilterRecords(records, 2, "", types.FilterModeAll)
		gt.Array(t, rows).Length(3)
	})

	t.Run("zero fields are vacuously complete", func(t *testing.T) {
		rows := usecase.FilterRecords(records, 0, "", types.FilterModeComplete)
		gt.Array(t, rows).Length(3)
	})
}

func TestLinkCandidates(t *testing.T) {
	api := &fakeAPI{
		rows: []*model.ServerResponse{
			serverRow(10, "1001", "Alice",
				model.FieldResponse{FieldID: "f1", Value: "500", RecordID: "record-a"},
				model.FieldResponse{FieldID: "f2", Value: "-", RecordID: "record-a"},
			),
		},
	}
	api.form = formWith(t, twoLevelContent())

	t.Run("level 2 sees answered lower-level cells", func(t *testing.T) {
		uc := newLoaded(t, api, levelTwoSession())
		candidates := gt.R1(uc.LinkCandidates(t.Context())).NoError(t)
		gt.Array(t, candidates).Length(1)
		gt.Value(t, candidates[0].ResponseKey).Equal("1001-f1")
		gt.Value(t, candidates[0].Value).Equal("500")
	})

	t.Run("level 1 has no candidates", func(t *testing.T) {
		uc := newLoaded(t, api, levelOneSession())
		candidates := gt.R1(uc.LinkCandidates(t.Context())).NoError(t)
		gt.Array(t, candidates).Length(0)
	})
}

func TestFilterView(t *testing.T) {
	api := &fakeAPI{
		rows: []*model.ServerResponse{
			serverRow(10, "1001", "Alice",
				model.FieldResponse{FieldID: "f1", Value: "500", RecordID: "record-a"},
			),
			serverRow(11, "1002", "Bob",
				model.FieldResponse{FieldID: "f1", Value: "900", RecordID: "record-b"},
			),
		},
	}
	api.form = formWith(t, twoLevelContent())
	uc := newLoaded(t, api, levelTwoSession())

	rows := gt.R1(uc.FilterView(t.Context(), "alice", types.FilterModeAll)).NoError(t)
	gt.Array(t, rows).Length(1)
	gt.Value(t, rows[0].Record.EmployeeID).Equal(types.EmployeeID("1001"))
}
