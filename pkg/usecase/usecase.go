package usecase

import (
	"sync"
	"time"

	"github.com/approvalforms/formsctl/pkg/domain/interfaces"
	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
)

// UseCases is the reconciliation and mutation engine for one loaded form.
// All mutations are serialized through user-triggered calls; the engine is
// effectively single-writer, and the repository adds its own guarding for
// multi-threaded hosts.
type UseCases struct {
	repo   interfaces.Repository
	client interfaces.FormsAPI

	timeout time.Duration

	form    *model.Form
	content *model.FormContent
	session *model.Session

	history  []model.HistoryEntry
	activity []*model.Activity

	// Coarse in-flight guard: one submission at a time across all records.
	// Acceptable for a single-user client; a concurrent host should track
	// in-flight record IDs instead.
	mu         sync.Mutex
	submitting bool

	states map[types.RecordID]types.RecordState
}

type Option func(*UseCases)

// WithTimeout bounds every network call issued by the engine. A request
// that never resolves would otherwise leave the in-flight guard held
// forever.
func WithTimeout(d time.Duration) Option {
	return func(uc *UseCases) {
		uc.timeout = d
	}
}

const defaultTimeout = 30 * time.Second

func New(repo interfaces.Repository, client interfaces.FormsAPI, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:    repo,
		client:  client,
		timeout: defaultTimeout,
		states:  map[types.RecordID]types.RecordState{},
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Form returns the loaded form, or nil before Load
func (uc *UseCases) Form() *model.Form {
	return uc.form
}

// Content returns the parsed form configuration, or nil before Load
func (uc *UseCases) Content() *model.FormContent {
	return uc.content
}

// Session returns the operating session, or nil before Load
func (uc *UseCases) Session() *model.Session {
	return uc.session
}

// History returns the response history projection built at load time
func (uc *UseCases) History() []model.HistoryEntry {
	return uc.history
}

// Activity returns the form's activity feed fetched at load time
func (uc *UseCases) Activity() []*model.Activity {
	return uc.activity
}

func (uc *UseCases) beginSubmit() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.submitting {
		return false
	}
	uc.submitting = true
	return true
}

func (uc *UseCases) endSubmit() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.submitting = false
}
