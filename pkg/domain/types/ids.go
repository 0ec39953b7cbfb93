package types

import (
	"strconv"

	"github.com/google/uuid"
)

// FormID identifies a form on the server side
type FormID int64

// String returns the decimal representation used in API paths
func (id FormID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// FieldID identifies a field within a form's configuration
type FieldID string

// EmployeeID identifies an employee across the platform
type EmployeeID string

// RecordID identifies one submission lineage. Server-assigned for persisted
// records, client-assigned ("record-<uuid>") for records created locally and
// not yet acknowledged.
type RecordID string

// NewRecordID generates a client-side record identifier
func NewRecordID() RecordID {
	return RecordID("record-" + uuid.New().String())
}

// Level is a tier in the multi-step approval workflow. Level 0 means
// "no level": the employee is not assigned anywhere on the form.
type Level int

// ResponseKey identifies one (employee, field) answer, used as the link
// target for higher-level submissions
func ResponseKey(employeeID EmployeeID, fieldID FieldID) string {
	return string(employeeID) + "-" + string(fieldID)
}

// PlaceholderValue is the sentinel for "no answer yet" in a response cell
const PlaceholderValue = "-"
