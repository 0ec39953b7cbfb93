package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
)

type recordRepository struct {
	mu      sync.RWMutex
	records map[types.RecordID]*model.Record
	order   []types.RecordID // insertion order, keeps List stable
}

func newRecordRepository() *recordRepository {
	return &recordRepository{
		records: make(map[types.RecordID]*model.Record),
	}
}

func (r *recordRepository) Put(ctx context.Context, record *model.Record) error {
	if record == nil || record.ResponseID == "" {
		return goerr.New("record requires a response ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.ResponseID]; !exists {
		r.order = append(r.order, record.ResponseID)
	}
	r.records[record.ResponseID] = record.Clone()
	return nil
}

func (r *recordRepository) Get(ctx context.Context, id types.RecordID) (*model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "record not found", goerr.V("record_id", id))
	}
	return record.Clone(), nil
}

// List returns all records sorted by employee ID ascending. The sort is
// stable over insertion order so equal employee IDs keep their arrival
// order, which pins the "record N" display labels.
func (r *recordRepository) List(ctx context.Context) ([]*model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*model.Record, 0, len(r.order))
	for _, id := range r.order {
		records = append(records, r.records[id].Clone())
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].EmployeeID < records[j].EmployeeID
	})
	return records, nil
}

func (r *recordRepository) Delete(ctx context.Context, id types.RecordID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return goerr.Wrap(ErrNotFound, "record not found", goerr.V("record_id", id))
	}
	delete(r.records, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *recordRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[types.RecordID]*model.Record)
	r.order = nil
	return nil
}
