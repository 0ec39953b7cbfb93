package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
	"github.com/approvalforms/formsctl/pkg/repository/memory"
)

func TestRecordRepositoryPutGet(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	record := model.NewRecord("rec-1", "E002", "Binh", true)
	record.Responses["f1"] = &model.ResponseCell{Value: "ok"}
	gt.NoError(t, repo.Records().Put(ctx, record))

	// Mutating the original must not leak into the store
	record.Responses["f1"].Value = "tampered"

	stored := gt.R1(repo.Records().Get(ctx, "rec-1")).NoError(t)
	gt.Value(t, stored.Responses["f1"].Value).Equal("ok")

	// Nor must mutating the returned copy
	stored.EmployeeName = "tampered"
	again := gt.R1(repo.Records().Get(ctx, "rec-1")).NoError(t)
	gt.Value(t, again.EmployeeName).Equal("Binh")
}

func TestRecordRepositoryGetMissing(t *testing.T) {
	repo := memory.New()
	_, err := repo.Records().Get(context.Background(), "nope")
	if !errors.Is(err, memory.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordRepositoryListSorted(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	gt.NoError(t, repo.Records().Put(ctx, model.NewRecord("rec-b", "E300", "", true)))
	gt.NoError(t, repo.Records().Put(ctx, model.NewRecord("rec-a", "E100", "", true)))
	gt.NoError(t, repo.Records().Put(ctx, model.NewRecord("rec-c", "E200", "", false)))

	records := gt.R1(repo.Records().List(ctx)).NoError(t)
	gt.Array(t, records).Length(3)
	gt.Value(t, records[0].EmployeeID).Equal(types.EmployeeID("E100"))
	gt.Value(t, records[1].EmployeeID).Equal(types.EmployeeID("E200"))
	gt.Value(t, records[2].EmployeeID).Equal(types.EmployeeID("E300"))
}

func TestRecordRepositoryListStableForEqualEmployees(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	gt.NoError(t, repo.Records().Put(ctx, model.NewRecord("rec-first", "E100", "", true)))
	gt.NoError(t, repo.Records().Put(ctx, model.NewRecord("rec-second", "E100", "", true)))

	records := gt.R1(repo.Records().List(ctx)).NoError(t)
	gt.Value(t, records[0].ResponseID).Equal(types.RecordID("rec-first"))
	gt.Value(t, records[1].ResponseID).Equal(types.RecordID("rec-second"))
}

func TestRecordRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	gt.NoError(t, repo.Records().Put(ctx, model.NewRecord("rec-1", "E100", "", true)))
	gt.NoError(t, repo.Records().Delete(ctx, "rec-1"))

	if err := repo.Records().Delete(ctx, "rec-1"); !errors.Is(err, memory.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}

	records := gt.R1(repo.Records().List(ctx)).NoError(t)
	gt.Array(t, records).Length(0)
}

func TestDraftRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	gt.NoError(t, repo.Drafts().Set(ctx, "rec-1", "f1", "10"))
	gt.NoError(t, repo.Drafts().Set(ctx, "rec-1", "f2", "true"))

	drafts := gt.R1(repo.Drafts().Get(ctx, "rec-1")).NoError(t)
	gt.Value(t, drafts["f1"]).Equal("10")
	gt.Value(t, drafts["f2"]).Equal("true")

	// Unknown records yield an empty draft map
	empty := gt.R1(repo.Drafts().Get(ctx, "rec-unknown")).NoError(t)
	gt.Value(t, len(empty)).Equal(0)

	seed := map[types.FieldID]string{"f1": ""}
	gt.NoError(t, repo.Drafts().Replace(ctx, "rec-1", seed))
	seed["f1"] = "tampered"

	drafts = gt.R1(repo.Drafts().Get(ctx, "rec-1")).NoError(t)
	gt.Value(t, drafts["f1"]).Equal("")
	gt.Value(t, len(drafts)).Equal(1)

	gt.NoError(t, repo.Drafts().Clear(ctx, "rec-1"))
	drafts = gt.R1(repo.Drafts().Get(ctx, "rec-1")).NoError(t)
	gt.Value(t, len(drafts)).Equal(0)
}
