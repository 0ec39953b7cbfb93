package interfaces

import (
	"context"

	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
)

// Repository holds the client-side working state for one loaded form: the
// reconciled record collection and the per-record draft values. The engine
// is the single writer; implementations still guard access so a port to a
// multi-threaded host stays safe.
type Repository interface {
	Records() RecordRepository
	Drafts() DraftRepository
}

// RecordRepository stores the reconciled record collection
type RecordRepository interface {
	Put(ctx context.Context, record *model.Record) error
	Get(ctx context.Context, id types.RecordID) (*model.Record, error)
	// List returns records sorted by employee ID ascending (stable)
	List(ctx context.Context) ([]*model.Record, error)
	Delete(ctx context.Context, id types.RecordID) error
	Clear(ctx context.Context) error
}

// DraftRepository stores locally-edited, not-yet-submitted field values.
// Values are plain strings; checkbox fields use the literals "true"/"false".
type DraftRepository interface {
	Set(ctx context.Context, recordID types.RecordID, fieldID types.FieldID, value string) error
	Get(ctx context.Context, recordID types.RecordID) (map[types.FieldID]string, error)
	Replace(ctx context.Context, recordID types.RecordID, values map[types.FieldID]string) error
	Clear(ctx context.Context, recordID types.RecordID) error
}
