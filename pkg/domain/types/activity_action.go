package types

// ActivityAction is the kind of event recorded in a form's activity log
type ActivityAction string

const (
	ActivityNewResponse    ActivityAction = "NEW_RESPONSE"
	ActivityEditResponse   ActivityAction = "EDIT_RESPONSE"
	ActivityDeleteResponse ActivityAction = "DELETE_RESPONSE"
	ActivityAddRecord      ActivityAction = "ADD_RECORD"
	ActivityStatusChange   ActivityAction = "STATUS_CHANGE"
)

// String returns the string representation of the activity action
func (a ActivityAction) String() string {
	return string(a)
}

// Describe renders the action as a past-tense activity feed phrase
func (a ActivityAction) Describe() string {
	switch a {
	case ActivityNewResponse:
		return "submitted a response"
	case ActivityEditResponse:
		return "edited a response"
	case ActivityDeleteResponse:
		return "deleted a response"
	case ActivityAddRecord:
		return "added a record"
	case ActivityStatusChange:
		return "changed the status"
	default:
		return "performed an action"
	}
}
