package memory

import (
	"context"
	"sync"

	"github.com/approvalforms/formsctl/pkg/domain/types"
)

type draftRepository struct {
	mu     sync.RWMutex
	drafts map[types.RecordID]map[types.FieldID]string
}

func newDraftRepository() *draftRepository {
	return &draftRepository{
		drafts: make(map[types.RecordID]map[types.FieldID]string),
	}
}

func (r *draftRepository) Set(ctx context.Context, recordID types.RecordID, fieldID types.FieldID, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, ok := r.drafts[recordID]
	if !ok {
		values = make(map[types.FieldID]string)
		r.drafts[recordID] = values
	}
	values[fieldID] = value
	return nil
}

// Get returns the draft values for a record. A record with no drafts yields
// an empty map, not an error: drafts are seeded lazily at selection time.
func (r *draftRepository) Get(ctx context.Context, recordID types.RecordID) (map[types.FieldID]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	values := make(map[types.FieldID]string, len(r.drafts[recordID]))
	for fieldID, value := range r.drafts[recordID] {
		values[fieldID] = value
	}
	return values, nil
}

func (r *draftRepository) Replace(ctx context.Context, recordID types.RecordID, values map[types.FieldID]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	replaced := make(map[types.FieldID]string, len(values))
	for fieldID, value := range values {
		replaced[fieldID] = value
	}
	r.drafts[recordID] = replaced
	return nil
}

func (r *draftRepository) Clear(ctx context.Context, recordID types.RecordID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.drafts, recordID)
	return nil
}
