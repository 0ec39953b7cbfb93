package usecase_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/approvalforms/formsctl/pkg/domain/interfaces"
	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
	"github.com/approvalforms/formsctl/pkg/repository/memory"
	"github.com/approvalforms/formsctl/pkg/usecase"
)

// fakeAPI records every call so tests can assert which network operations
// a mutation performed, and in what order.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	form     *model.Form
	rows     []*model.ServerResponse
	activity []*model.Activity

	submitErr       error
	deleteErr       error
	deleteRecordErr error

	// when set, SubmitResponse signals submitStarted and then blocks until
	// submitRelease is closed
	submitStarted chan struct{}
	submitRelease chan struct{}
}

var _ interfaces.FormsAPI = &fakeAPI{}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.calls...)
}

func (f *fakeAPI) FetchForm(ctx context.Context, formID types.FormID) (*model.Form, error) {
	f.record("FetchForm")
	return f.form, nil
}

func (f *fakeAPI) FetchResponses(ctx context.Context, formID types.FormID) ([]*model.ServerResponse, error) {
	f.record("FetchResponses")
	return f.rows, nil
}

func (f *fakeAPI) FetchActivity(ctx context.Context, formID types.FormID) ([]*model.Activity, error) {
	f.record("FetchActivity")
	return f.activity, nil
}

func (f *fakeAPI) FetchRecentActivity(ctx context.Context) ([]*model.Activity, error) {
	f.record("FetchRecentActivity")
	return f.activity, nil
}

func (f *fakeAPI) SubmitResponse(ctx context.Context, formID types.FormID, req *model.SubmitRequest) error {
	f.record("SubmitResponse")
	if f.submitStarted != nil {
		f.submitStarted <- struct{}{}
		<-f.submitRelease
	}
	return f.submitErr
}

func (f *fakeAPI) DeleteResponse(ctx context.Context, formID types.FormID, req *model.DeleteResponseRequest) error {
	f.record("DeleteResponse")
	return f.deleteErr
}

func (f *fakeAPI) DeleteRecord(ctx context.Context, formID types.FormID, recordID types.RecordID) error {
	f.record("DeleteRecord")
	return f.deleteRecordErr
}

func (f *fakeAPI) ToggleFormStatus(ctx context.Context, formID types.FormID, active bool) (*model.Form, error) {
	f.record("ToggleFormStatus")
	form := *f.form
	form.Active = active
	f.form = &form
	return &form, nil
}

func (f *fakeAPI) DeleteForm(ctx context.Context, formID types.FormID) error {
	f.record("DeleteForm")
	return nil
}

func (f *fakeAPI) LogAddRecord(ctx context.Context, formID types.FormID) error {
	f.record("LogAddRecord")
	return nil
}

// mutationCalls filters out the load-time fetches, which every scenario
// shares
func mutationCalls(calls []string) []string {
	var out []string
	for _, call := range calls {
		switch call {
		case "FetchForm", "FetchResponses", "FetchActivity":
			continue
		}
		out = append(out, call)
	}
	return out
}

func twoLevelContent() *model.FormContent {
	return &model.FormContent{
		Fields: []model.Field{
			{ID: "f1", Question: "Requested amount", Type: types.FieldTypeNumber, LevelNumbers: []types.Level{1}},
			{ID: "f2", Question: "Justification", Type: types.FieldTypeTextarea, LevelNumbers: []types.Level{1}},
			{ID: "f3", Question: "Approved", Type: types.FieldTypeCheckbox, LevelNumbers: []types.Level{2}},
		},
		LevelAssignments: map[types.Level][]types.EmployeeID{
			1: {"1001", "1002"},
			2: {"2001"},
		},
		LevelPriorityOrder:  []types.Level{1, 2},
		AccessibleFieldIDs:  []types.FieldID{"f1", "f2", "f3"},
		CanFillCurrentLevel: true,
	}
}

func formWith(t *testing.T, content *model.FormContent) *model.Form {
	t.Helper()
	raw := gt.R1(json.Marshal(content)).NoError(t)
	return &model.Form{
		ID:              7,
		Title:           "Budget Request",
		OwnerEmployeeID: "9001",
		Active:          true,
		FormContent:     string(raw),
	}
}

func serverRow(responseID int64, employeeID types.EmployeeID, name string, responses ...model.FieldResponse) *model.ServerResponse {
	return &model.ServerResponse{
		ResponseID:   responseID,
		EmployeeID:   employeeID,
		EmployeeName: name,
		Responses:    responses,
	}
}

// newLoaded builds an engine over the fake API and loads the form
func newLoaded(t *testing.T, api *fakeAPI, session *model.Session) *usecase.UseCases {
	t.Helper()
	uc := usecase.New(memory.New(), api)
	gt.NoError(t, uc.Load(t.Context(), api.form.ID, session))
	return uc
}
