package formsapi

import (
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"

	"github.com/approvalforms/formsctl/pkg/domain/types"
)

// Credential is the authorized-request capability: it attaches the
// session's identity to an outgoing request. The derivation mechanism is
// external to the engine.
type Credential interface {
	Apply(req *http.Request) error
}

// BasicCredential authenticates with the platform's basic scheme, the
// employee ID as the username
type BasicCredential struct {
	EmployeeID types.EmployeeID
	Password   string `masq:"secret"`
}

func (c *BasicCredential) Apply(req *http.Request) error {
	req.SetBasicAuth(string(c.EmployeeID), c.Password)
	return nil
}

// TokenCredential mints a short-lived HS256 bearer token from the session
// employee ID on every request
type TokenCredential struct {
	EmployeeID types.EmployeeID
	Secret     []byte `masq:"secret"`
	TTL        time.Duration
}

const defaultTokenTTL = 5 * time.Minute

func (c *TokenCredential) Apply(req *http.Request) error {
	ttl := c.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	now := time.Now()
	token, err := jwt.NewBuilder().
		Subject(string(c.EmployeeID)).
		IssuedAt(now).
		Expiration(now.Add(ttl)).
		Build()
	if err != nil {
		return goerr.Wrap(err, "failed to build token")
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, c.Secret))
	if err != nil {
		return goerr.Wrap(err, "failed to sign token")
	}

	req.Header.Set("Authorization", "Bearer "+string(signed))
	return nil
}
