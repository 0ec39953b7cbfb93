package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
)

func TestRecordCellMissingKeyIsPlaceholder(t *testing.T) {
	record := model.NewRecord("rec-1", "E001", "Asha", true)

	cell := record.Cell("f1")
	gt.Value(t, cell.Value).Equal(types.PlaceholderValue)
	gt.Value(t, cell.ResponseID).Equal(types.RecordID("rec-1"))
	gt.Value(t, cell.IsAnswered()).Equal(false)
}

func TestCellIsAnswered(t *testing.T) {
	gt.Value(t, (&model.ResponseCell{Value: "42"}).IsAnswered()).Equal(true)
	gt.Value(t, (&model.ResponseCell{Value: "-"}).IsAnswered()).Equal(false)
	gt.Value(t, (&model.ResponseCell{Value: ""}).IsAnswered()).Equal(false)

	var nilCell *model.ResponseCell
	gt.Value(t, nilCell.IsAnswered()).Equal(false)
}

func TestRecordAddLevel(t *testing.T) {
	record := model.NewRecord("rec-1", "E001", "Asha", false)
	record.AddLevel(1)
	record.AddLevel(2)
	record.AddLevel(1)

	gt.Value(t, record.Levels).Equal([]types.Level{1, 2})
	gt.Value(t, record.HasLevel(2)).Equal(true)
	gt.Value(t, record.HasLevel(3)).Equal(false)
}

func TestRecordAnsweredCount(t *testing.T) {
	record := model.NewRecord("rec-1", "E001", "Asha", true)
	record.Responses["f1"] = &model.ResponseCell{Value: "ok"}
	record.Responses["f2"] = &model.ResponseCell{Value: types.PlaceholderValue}

	gt.Value(t, record.AnsweredCount()).Equal(1)
}

func TestRecordClone(t *testing.T) {
	record := model.NewRecord("rec-1", "E001", "Asha", true)
	record.AddLevel(1)
	record.Responses["f1"] = &model.ResponseCell{Value: "ok", EmployeeID: "E001"}

	clone := record.Clone()
	clone.Responses["f1"].Value = "changed"
	clone.AddLevel(2)

	gt.Value(t, record.Responses["f1"].Value).Equal("ok")
	gt.Value(t, record.Levels).Equal([]types.Level{1})
}

func TestHistoryFromResponses(t *testing.T) {
	rows := []*model.ServerResponse{
		{
			ResponseID:   7,
			EmployeeID:   "E001",
			EmployeeName: "Asha",
			Responses: []model.FieldResponse{
				{FieldID: "f1", Value: "10", RecordID: "rec-1"},
				{FieldID: "f2", Value: "ok"}, // legacy row: no record grouping
			},
		},
	}

	history := model.HistoryFromResponses(rows)
	gt.Array(t, history).Length(2)
	gt.Value(t, history[0].RecordID).Equal(types.RecordID("rec-1"))
	gt.Value(t, history[1].RecordID).Equal(types.RecordID("7"))
	gt.Value(t, history[1].EditorName).Equal("Asha")
}
