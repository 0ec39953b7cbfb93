package model

import (
	"github.com/approvalforms/formsctl/pkg/domain/types"
)

// ResponseCell is the authoritative value for one (record, field) pair.
// Value holds the placeholder sentinel until a real answer arrives; a
// deleted answer resets to the placeholder rather than removing the cell.
type ResponseCell struct {
	Value            string
	ResponseID       types.RecordID
	LinkedResponseID string
	EmployeeID       types.EmployeeID
	EmployeeName     string
	FieldLevel       types.Level
	Question         string
	IsServerResponse bool
}

// IsAnswered reports whether the cell holds a real answer
func (c *ResponseCell) IsAnswered() bool {
	return c != nil && c.Value != "" && c.Value != types.PlaceholderValue
}

// Clone returns a copy of the cell
func (c *ResponseCell) Clone() *ResponseCell {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// Record is one logical submission lineage across one or more approval
// levels. ResponseID is unique within a form's record collection.
// IsServerRecord is false only for client-created placeholders the server
// has never acknowledged.
type Record struct {
	ResponseID     types.RecordID
	EmployeeID     types.EmployeeID
	EmployeeName   string
	Levels         []types.Level
	Responses      map[types.FieldID]*ResponseCell
	IsServerRecord bool
}

// NewRecord creates an empty record
func NewRecord(id types.RecordID, employeeID types.EmployeeID, employeeName string, isServer bool) *Record {
	return &Record{
		ResponseID:     id,
		EmployeeID:     employeeID,
		EmployeeName:   employeeName,
		Levels:         []types.Level{},
		Responses:      map[types.FieldID]*ResponseCell{},
		IsServerRecord: isServer,
	}
}

// Cell returns the cell for a field. A missing key behaves identically to a
// placeholder cell: server-populated records may be sparse until the
// reconciler fills them.
func (r *Record) Cell(fieldID types.FieldID) *ResponseCell {
	if cell, ok := r.Responses[fieldID]; ok && cell != nil {
		return cell
	}
	return &ResponseCell{
		Value:      types.PlaceholderValue,
		ResponseID: r.ResponseID,
	}
}

// AddLevel records that a level has touched this lineage
func (r *Record) AddLevel(level types.Level) {
	for _, l := range r.Levels {
		if l == level {
			return
		}
	}
	r.Levels = append(r.Levels, level)
}

// HasLevel reports whether any answered field belongs to the given level
func (r *Record) HasLevel(level types.Level) bool {
	for _, l := range r.Levels {
		if l == level {
			return true
		}
	}
	return false
}

// AnsweredCount returns the number of fields holding a real answer
func (r *Record) AnsweredCount() int {
	n := 0
	for _, cell := range r.Responses {
		if cell.IsAnswered() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the record
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	clone := &Record{
		ResponseID:     r.ResponseID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		Levels:         make([]types.Level, len(r.Levels)),
		Responses:      make(map[types.FieldID]*ResponseCell, len(r.Responses)),
		IsServerRecord: r.IsServerRecord,
	}
	copy(clone.Levels, r.Levels)
	for fieldID, cell := range r.Responses {
		clone.Responses[fieldID] = cell.Clone()
	}
	return clone
}
