package config

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// ProfileData is the on-disk connection profile. Every field is optional;
// command-line flags take precedence over profile values.
type ProfileData struct {
	Endpoint     string `toml:"endpoint"`
	EmployeeID   string `toml:"employee_id"`
	EmployeeName string `toml:"employee_name"`
	Role         string `toml:"role"`
	Credential   string `toml:"credential"`
	TokenSecret  string `toml:"token_secret"`
}

// Validate checks the profile's fields that have constrained values
func (p *ProfileData) Validate() error {
	if p.Role != "" && p.Role != "OWNER" && p.Role != "EMPLOYEE" {
		return goerr.Wrap(ErrInvalidConfig, "role must be OWNER or EMPLOYEE", goerr.V("role", p.Role))
	}
	switch p.Credential {
	case "", "basic", "token":
	default:
		return goerr.Wrap(ErrInvalidConfig, "credential must be basic or token", goerr.V("credential", p.Credential))
	}
	if p.Endpoint != "" && !strings.HasPrefix(p.Endpoint, "http://") && !strings.HasPrefix(p.Endpoint, "https://") {
		return goerr.Wrap(ErrInvalidConfig, "endpoint must be an http(s) URL", goerr.V("endpoint", p.Endpoint))
	}
	return nil
}

type Profile struct {
	path string
}

func (x *Profile) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "profile",
			Usage:       "Path to a TOML connection profile",
			Category:    "Connection",
			Destination: &x.path,
			Sources:     cli.EnvVars("FORMSCTL_PROFILE"),
		},
	}
}

// Load reads and validates the profile file. A profile flag that was never
// set yields a nil profile, not an error.
func (x *Profile) Load() (*ProfileData, error) {
	if x.path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(x.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read profile", goerr.V("path", x.path))
	}

	var data ProfileData
	if err := toml.Unmarshal(raw, &data); err != nil {
		return nil, goerr.Wrap(ErrProfileParse, "profile is not valid TOML",
			goerr.V("path", x.path), goerr.V("cause", err.Error()))
	}
	if err := data.Validate(); err != nil {
		return nil, goerr.Wrap(err, "profile rejected", goerr.V("path", x.path))
	}
	return &data, nil
}
