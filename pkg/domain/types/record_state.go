package types

// RecordState tracks a record's position in the local mutation lifecycle:
//
//	Placeholder -> Draft -> Pending -> Confirmed
//
// Confirmed returns to Draft on a subsequent edit. Removed is terminal;
// the record is no longer iterable.
type RecordState string

const (
	RecordStatePlaceholder RecordState = "placeholder"
	RecordStateDraft       RecordState = "draft"
	RecordStatePending     RecordState = "pending"
	RecordStateConfirmed   RecordState = "confirmed"
	RecordStateRemoved     RecordState = "removed"
)

// String returns the string representation of the record state
func (s RecordState) String() string {
	return string(s)
}

// CanSubmit reports whether a submit may be initiated from this state
func (s RecordState) CanSubmit() bool {
	switch s {
	case RecordStatePlaceholder, RecordStateDraft, RecordStateConfirmed:
		return true
	default:
		return false
	}
}
