package memory

import (
	"github.com/approvalforms/formsctl/pkg/domain/interfaces"
)

// Memory holds the working state for one loaded form in process memory.
// All sub-repositories hand out deep copies so callers cannot mutate stored
// state behind the engine's back.
type Memory struct {
	records *recordRepository
	drafts  *draftRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		records: newRecordRepository(),
		drafts:  newDraftRepository(),
	}
}

func (m *Memory) Records() interfaces.RecordRepository {
	return m.records
}

func (m *Memory) Drafts() interfaces.DraftRepository {
	return m.drafts
}
