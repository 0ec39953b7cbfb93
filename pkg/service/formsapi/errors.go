package formsapi

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
)

// Error taxonomy for the forms API. Callers branch on these sentinels to
// produce the per-status user-facing messages; transient failures carry
// ErrNetwork and leave local state untouched.
var (
	ErrNetwork       = goerr.New("network error")
	ErrUnauthorized  = goerr.New("authentication failed")
	ErrAuthorization = goerr.New("permission denied")
	ErrNotFound      = goerr.New("not found")
	ErrConflict      = goerr.New("data conflict")
	ErrServer        = goerr.New("server error")
)

// Context keys for error values
const (
	StatusKey  = "status"
	PathKey    = "path"
	MessageKey = "message"
)

// classify maps an HTTP status code onto the error taxonomy. The original
// backend reports dependency conflicts on record deletion as a bare 500;
// that guess is preserved here by keeping 500 distinct from 409 so callers
// can phrase it as "likely a dependency conflict".
func classify(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrAuthorization
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrServer
	}
}
