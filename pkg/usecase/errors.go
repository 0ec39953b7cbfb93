package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the engine. Precondition failures (validation) are
// raised before any network call; the server round-trip never starts.
var (
	// Lifecycle errors
	ErrNotLoaded      = goerr.New("no form loaded")
	ErrFormInactive   = goerr.New("form is inactive")
	ErrSubmitInFlight = goerr.New("a submission is already in flight")
	ErrRecordNotFound = goerr.New("record not found")

	// Validation errors
	ErrNoValidResponses     = goerr.New("no valid responses to submit for your level")
	ErrMissingLowerLink     = goerr.New("missing lower-level link")
	ErrInvalidPriorityOrder = goerr.New("level priority order must be a permutation of all levels")
	ErrFillNotAllowed       = goerr.New("your level cannot fill this form until prior levels respond")

	// Access control errors
	ErrNotAuthorized = goerr.New("not authorized")
	ErrLevelRequired = goerr.New("operation requires a level 1 assignment")
)

// Context keys for error values
const (
	RecordIDKey = "record_id"
	FieldIDKey  = "field_id"
	FieldsKey   = "fields"
)
