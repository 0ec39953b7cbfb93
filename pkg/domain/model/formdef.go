package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"

	"github.com/approvalforms/formsctl/pkg/domain/types"
)

// Field is one question in a form's configuration. Immutable once the form
// is loaded.
type Field struct {
	ID           types.FieldID   `json:"id"`
	Question     string          `json:"question"`
	Type         types.FieldType `json:"type"`
	LevelNumbers []types.Level   `json:"levelNumbers"`
	Options      []string        `json:"options,omitempty"`
}

// PrimaryLevel is the level a field's answer is attributed to. Legacy
// configurations may omit levelNumbers entirely; those fields belong to
// level 1.
func (f *Field) PrimaryLevel() types.Level {
	if len(f.LevelNumbers) == 0 {
		return 1
	}
	return f.LevelNumbers[0]
}

// HasLevel reports whether the field may be answered at the given level
func (f *Field) HasLevel(level types.Level) bool {
	for _, l := range f.LevelNumbers {
		if l == level {
			return true
		}
	}
	return false
}

// Label is the display name for the field, falling back to the field ID
// when the question text is empty
func (f *Field) Label() string {
	if f.Question != "" {
		return f.Question
	}
	return "Field " + string(f.ID)
}

// HintResponse is a higher-priority answer supplied by the server for read
// visibility into another level's decisions. RecordID is empty for hints
// that are not backed by a persisted record.
type HintResponse struct {
	Value            string           `json:"value"`
	RecordID         types.RecordID   `json:"recordId,omitempty"`
	LinkedResponseID string           `json:"linkedResponseId,omitempty"`
	EmployeeID       types.EmployeeID `json:"employeeId"`
	EmployeeName     string           `json:"employeeName,omitempty"`
}

// FormContent is the parsed form configuration. AccessibleFieldIDs and
// CanFillCurrentLevel are server-computed hints and are propagated
// unmodified.
type FormContent struct {
	Version                 int                                   `json:"version,omitempty"`
	Fields                  []Field                               `json:"fields"`
	LevelAssignments        map[types.Level][]types.EmployeeID    `json:"levelAssignments"`
	LevelPriorityOrder      []types.Level                         `json:"levelPriorityOrder"`
	AccessibleFieldIDs      []types.FieldID                       `json:"accessibleFieldIds"`
	CanFillCurrentLevel     bool                                  `json:"canFillCurrentLevel"`
	HigherPriorityResponses map[types.FieldID][]*HintResponse     `json:"higherPriorityResponses,omitempty"`
}

// contentSchemaVersion is the highest configuration schema this client
// understands. Version 0 (absent) is treated as 1.
const contentSchemaVersion = 1

// ParseFormContent parses the stored configuration blob. It fails closed:
// any structural problem yields ErrConfigParse and the form must not render.
func ParseFormContent(raw string) (*FormContent, error) {
	if raw == "" {
		return nil, goerr.Wrap(ErrConfigParse, "form content is empty")
	}

	var content FormContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return nil, goerr.Wrap(ErrConfigParse, "form content is not valid JSON", goerr.V("cause", err.Error()))
	}

	if content.Version > contentSchemaVersion {
		return nil, goerr.Wrap(ErrUnsupportedVersion, "form content schema is newer than this client",
			goerr.V("version", content.Version))
	}

	seen := make(map[types.FieldID]bool, len(content.Fields))
	for i, field := range content.Fields {
		if field.ID == "" {
			return nil, goerr.Wrap(ErrConfigParse, "field is missing an id", goerr.V("index", i))
		}
		if seen[field.ID] {
			return nil, goerr.Wrap(ErrConfigParse, "duplicate field id", goerr.V("field_id", field.ID))
		}
		seen[field.ID] = true
		if !field.Type.IsValid() {
			return nil, goerr.Wrap(ErrConfigParse, "unknown field type",
				goerr.V("field_id", field.ID), goerr.V("type", field.Type))
		}
	}

	if content.LevelAssignments == nil {
		content.LevelAssignments = map[types.Level][]types.EmployeeID{}
	}
	if content.HigherPriorityResponses == nil {
		content.HigherPriorityResponses = map[types.FieldID][]*HintResponse{}
	}

	return &content, nil
}

// FieldByID returns the field definition, or nil if the id is unknown
func (c *FormContent) FieldByID(id types.FieldID) *Field {
	for i := range c.Fields {
		if c.Fields[i].ID == id {
			return &c.Fields[i]
		}
	}
	return nil
}

// IsAccessible reports whether the server marked the field answerable for
// the current session
func (c *FormContent) IsAccessible(id types.FieldID) bool {
	for _, fid := range c.AccessibleFieldIDs {
		if fid == id {
			return true
		}
	}
	return false
}

// NumLevels is the number of levels referenced by the assignment map
func (c *FormContent) NumLevels() int {
	return len(c.LevelAssignments)
}
