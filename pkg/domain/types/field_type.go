package types

// FieldType represents the input type of a form field
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeEmail    FieldType = "email"
	FieldTypeDate     FieldType = "date"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeFile     FieldType = "file"
)

// AllFieldTypes returns all valid field types
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeNumber,
		FieldTypeEmail,
		FieldTypeDate,
		FieldTypeRadio,
		FieldTypeTextarea,
		FieldTypeCheckbox,
		FieldTypeFile,
	}
}

// IsValid checks if the field type is valid
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText,
		FieldTypeNumber,
		FieldTypeEmail,
		FieldTypeDate,
		FieldTypeRadio,
		FieldTypeTextarea,
		FieldTypeCheckbox,
		FieldTypeFile:
		return true
	default:
		return false
	}
}

// String returns the string representation of the field type
func (t FieldType) String() string {
	return string(t)
}

// EmptyDraft returns the draft value a field starts from: checkbox drafts
// are the literal "false", everything else is the empty string
func (t FieldType) EmptyDraft() string {
	if t == FieldTypeCheckbox {
		return "false"
	}
	return ""
}
