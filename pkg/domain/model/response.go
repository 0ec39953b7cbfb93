package model

import (
	"strconv"
	"time"

	"github.com/approvalforms/formsctl/pkg/domain/types"
)

// ServerResponse is one submission row from the responses feed. ResponseID
// is the server-side row identifier; legacy single-level submissions carry
// no record grouping, so the row id doubles as the record id.
type ServerResponse struct {
	ResponseID   int64            `json:"responseId"`
	EmployeeID   types.EmployeeID `json:"employeeId"`
	EmployeeName string           `json:"employeeName"`
	Responses    []FieldResponse  `json:"responses"`
}

// FieldResponse is one field-value entry within a submission row
type FieldResponse struct {
	FieldID          types.FieldID    `json:"fieldId"`
	Question         string           `json:"question,omitempty"`
	Value            string           `json:"value"`
	LinkedResponseID string           `json:"linkedResponseId,omitempty"`
	RecordID         types.RecordID   `json:"recordId,omitempty"`
	EmployeeID       types.EmployeeID `json:"employeeId,omitempty"`
	EmployeeName     string           `json:"employeeName,omitempty"`
}

// RecordIDFor resolves the record grouping for a field entry, falling back
// to the row identifier for legacy rows without explicit grouping
func (fr *FieldResponse) RecordIDFor(row *ServerResponse) types.RecordID {
	if fr.RecordID != "" {
		return fr.RecordID
	}
	return types.RecordID(strconv.FormatInt(row.ResponseID, 10))
}

// SubmitRequest is the outgoing payload for submitting draft responses
type SubmitRequest struct {
	RecordID  types.RecordID `json:"recordId"`
	Responses []SubmitEntry  `json:"responses"`
}

// SubmitEntry is one field's outgoing answer. LinkedResponseID is a pointer
// so an unlinked level-1 answer serializes as an explicit null, matching the
// existing wire contract.
type SubmitEntry struct {
	FieldID          types.FieldID    `json:"fieldId"`
	Value            string           `json:"value"`
	LinkedResponseID *string          `json:"linkedResponseId"`
	RecordID         types.RecordID   `json:"recordId"`
	EmployeeID       types.EmployeeID `json:"employeeId"`
}

// DeleteResponseRequest identifies a single cell to delete
type DeleteResponseRequest struct {
	EmployeeID types.EmployeeID `json:"employeeId"`
	FieldID    types.FieldID    `json:"fieldId"`
	RecordID   types.RecordID   `json:"recordId"`
}

// StatusRequest toggles the form's active flag
type StatusRequest struct {
	IsActive bool `json:"isActive"`
}

// Activity is one entry in a form's activity log
type Activity struct {
	ActionType   types.ActivityAction `json:"actionType"`
	FormID       types.FormID         `json:"formId"`
	FormTitle    string               `json:"formTitle"`
	EmployeeID   types.EmployeeID     `json:"employeeId"`
	EmployeeName string               `json:"employeeName"`
	Timestamp    string               `json:"timestamp"`
}

// Time parses the activity timestamp, returning the zero time if the server
// sent an unparseable value
func (a *Activity) Time() time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999999Z07:00[MST]"} {
		if ts, err := time.Parse(layout, a.Timestamp); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// HistoryEntry is a flattened view of who authored or edited which field,
// derived from the raw response feed
type HistoryEntry struct {
	EmployeeID types.EmployeeID
	FieldID    types.FieldID
	Kind       string
	EditorID   types.EmployeeID
	EditorName string
	RecordID   types.RecordID
}

// HistoryFromResponses builds the response history projection used by the
// export workbook and the history panel
func HistoryFromResponses(rows []*ServerResponse) []HistoryEntry {
	var history []HistoryEntry
	for _, row := range rows {
		for i := range row.Responses {
			fr := &row.Responses[i]
			history = append(history, HistoryEntry{
				EmployeeID: row.EmployeeID,
				FieldID:    fr.FieldID,
				Kind:       "New",
				EditorID:   row.EmployeeID,
				EditorName: row.EmployeeName,
				RecordID:   fr.RecordIDFor(row),
			})
		}
	}
	return history
}
