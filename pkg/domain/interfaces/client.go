package interfaces

import (
	"context"

	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
)

// FormsAPI is the authorized request capability against the forms platform.
// Implementations attach the session credential to every call; the engine
// never talks to the network directly.
type FormsAPI interface {
	FetchForm(ctx context.Context, formID types.FormID) (*model.Form, error)
	FetchResponses(ctx context.Context, formID types.FormID) ([]*model.ServerResponse, error)
	FetchActivity(ctx context.Context, formID types.FormID) ([]*model.Activity, error)
	FetchRecentActivity(ctx context.Context) ([]*model.Activity, error)

	SubmitResponse(ctx context.Context, formID types.FormID, req *model.SubmitRequest) error
	DeleteResponse(ctx context.Context, formID types.FormID, req *model.DeleteResponseRequest) error
	DeleteRecord(ctx context.Context, formID types.FormID, recordID types.RecordID) error
	ToggleFormStatus(ctx context.Context, formID types.FormID, active bool) (*model.Form, error)
	DeleteForm(ctx context.Context, formID types.FormID) error
	LogAddRecord(ctx context.Context, formID types.FormID) error
}
