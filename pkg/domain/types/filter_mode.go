package types

// FilterMode selects which records a view includes based on completeness
type FilterMode string

const (
	FilterModeAll      FilterMode = "all"
	FilterModeComplete FilterMode = "complete"
	FilterModePartial  FilterMode = "partial"
)

// IsValid checks if the filter mode is valid
func (m FilterMode) IsValid() bool {
	switch m {
	case FilterModeAll, FilterModeComplete, FilterModePartial:
		return true
	default:
		return false
	}
}

// String returns the string representation of the filter mode
func (m FilterMode) String() string {
	return string(m)
}
