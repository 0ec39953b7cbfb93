package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
	"github.com/approvalforms/formsctl/pkg/service/formsapi"
)

// Client is the connection configuration for the forms API: who the
// session is, how it authenticates, and where the backend lives.
type Client struct {
	endpoint     string
	employeeID   string
	employeeName string
	role         string
	credential   string
	password     string
	tokenSecret  string
	timeout      time.Duration
}

func (x *Client) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "endpoint",
			Usage:       "Forms API base URL (e.g. https://forms.example.com/api)",
			Category:    "Connection",
			Destination: &x.endpoint,
			Sources:     cli.EnvVars("FORMSCTL_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:        "employee-id",
			Usage:       "Employee ID of the operating session",
			Category:    "Connection",
			Destination: &x.employeeID,
			Sources:     cli.EnvVars("FORMSCTL_EMPLOYEE_ID"),
		},
		&cli.StringFlag{
			Name:        "employee-name",
			Usage:       "Display name of the operating session",
			Category:    "Connection",
			Destination: &x.employeeName,
			Sources:     cli.EnvVars("FORMSCTL_EMPLOYEE_NAME"),
		},
		&cli.StringFlag{
			Name:        "role",
			Usage:       "Session role (OWNER or EMPLOYEE)",
			Category:    "Connection",
			Value:       "EMPLOYEE",
			Destination: &x.role,
			Sources:     cli.EnvVars("FORMSCTL_ROLE"),
		},
		&cli.StringFlag{
			Name:        "credential",
			Usage:       "Credential scheme (basic or token)",
			Category:    "Connection",
			Value:       "basic",
			Destination: &x.credential,
			Sources:     cli.EnvVars("FORMSCTL_CREDENTIAL"),
		},
		&cli.StringFlag{
			Name:        "password",
			Usage:       "Password for the basic credential scheme",
			Category:    "Connection",
			Destination: &x.password,
			Sources:     cli.EnvVars("FORMSCTL_PASSWORD"),
		},
		&cli.StringFlag{
			Name:        "token-secret",
			Usage:       "Signing secret for the token credential scheme",
			Category:    "Connection",
			Destination: &x.tokenSecret,
			Sources:     cli.EnvVars("FORMSCTL_TOKEN_SECRET"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Timeout for each API call",
			Category:    "Connection",
			Value:       30 * time.Second,
			Destination: &x.timeout,
			Sources:     cli.EnvVars("FORMSCTL_TIMEOUT"),
		},
	}
}

func (x Client) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("endpoint", x.endpoint),
		slog.String("employee-id", x.employeeID),
		slog.String("credential", x.credential),
		slog.Int("password.len", len(x.password)),
		slog.Int("token-secret.len", len(x.tokenSecret)),
	)
}

// ApplyProfile fills in connection values from a profile. Flags already set
// on the command line win.
func (x *Client) ApplyProfile(p *ProfileData) {
	if p == nil {
		return
	}
	if x.endpoint == "" {
		x.endpoint = p.Endpoint
	}
	if x.employeeID == "" {
		x.employeeID = p.EmployeeID
	}
	if x.employeeName == "" {
		x.employeeName = p.EmployeeName
	}
	if p.Role != "" {
		x.role = p.Role
	}
	if p.Credential != "" && x.credential == "basic" {
		x.credential = p.Credential
	}
	if x.tokenSecret == "" {
		x.tokenSecret = p.TokenSecret
	}
}

// Timeout returns the configured per-call timeout
func (x *Client) Timeout() time.Duration {
	return x.timeout
}

// Configure builds the API client and the session it operates as
func (x *Client) Configure() (*formsapi.Client, *model.Session, error) {
	if x.endpoint == "" {
		return nil, nil, goerr.Wrap(ErrInvalidConfig, "endpoint is required: set --endpoint or FORMSCTL_ENDPOINT")
	}
	if x.employeeID == "" {
		return nil, nil, goerr.Wrap(ErrInvalidConfig, "employee ID is required: set --employee-id or FORMSCTL_EMPLOYEE_ID")
	}

	var cred formsapi.Credential
	switch x.credential {
	case "basic":
		if x.password == "" {
			return nil, nil, goerr.Wrap(ErrInvalidConfig, "basic credential requires --password")
		}
		cred = &formsapi.BasicCredential{
			EmployeeID: types.EmployeeID(x.employeeID),
			Password:   x.password,
		}
	case "token":
		if x.tokenSecret == "" {
			return nil, nil, goerr.Wrap(ErrInvalidConfig, "token credential requires --token-secret")
		}
		cred = &formsapi.TokenCredential{
			EmployeeID: types.EmployeeID(x.employeeID),
			Secret:     []byte(x.tokenSecret),
		}
	default:
		return nil, nil, goerr.Wrap(ErrInvalidConfig, "unknown credential scheme", goerr.V("credential", x.credential))
	}

	name := x.employeeName
	if name == "" {
		name = x.employeeID
	}
	session := &model.Session{
		EmployeeID:   types.EmployeeID(x.employeeID),
		EmployeeName: name,
		Role:         x.role,
	}

	return formsapi.New(x.endpoint, cred), session, nil
}
