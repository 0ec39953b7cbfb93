package model

import (
	"github.com/approvalforms/formsctl/pkg/domain/types"
)

// Form is the server-side form entity. FormContent is an opaque JSON blob
// until parsed into a FormContent via ParseFormContent.
type Form struct {
	ID              types.FormID     `json:"id"`
	Title           string           `json:"title"`
	OwnerEmployeeID types.EmployeeID `json:"ownerEmployeeId"`
	Active          bool             `json:"active"`
	FormContent     string           `json:"formContent"`
}

// Session carries the identity of the employee operating the client. It is
// passed explicitly into every engine call rather than read from ambient
// state.
type Session struct {
	EmployeeID   types.EmployeeID
	EmployeeName string
	Role         string
}

// IsOwner reports whether the session may operate at any level for edits on
// the given form
func (s *Session) IsOwner(form *Form) bool {
	if s == nil || form == nil {
		return false
	}
	return s.Role == "OWNER" || s.EmployeeID == form.OwnerEmployeeID
}
