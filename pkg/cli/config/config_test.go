package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestLoggerConfigure(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := Logger{level: "info", format: "console", output: "stderr"}
		closer := gt.R1(cfg.Configure()).NoError(t)
		closer()
	})

	t.Run("json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		cfg := Logger{level: "debug", format: "json", output: path}
		closer := gt.R1(cfg.Configure()).NoError(t)
		closer()

		_, err := os.Stat(path)
		gt.NoError(t, err)
	})

	t.Run("unknown level", func(t *testing.T) {
		cfg := Logger{level: "loud"}
		_, err := cfg.Configure()
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, ErrInvalidConfig)).Equal(true)
	})

	t.Run("unknown format", func(t *testing.T) {
		cfg := Logger{level: "info", format: "xml"}
		_, err := cfg.Configure()
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, ErrInvalidConfig)).Equal(true)
	})
}

func TestProfileLoad(t *testing.T) {
	t.Run("no profile set", func(t *testing.T) {
		var cfg Profile
		data := gt.R1(cfg.Load()).NoError(t)
		gt.Value(t, data == nil).Equal(true)
	})

	t.Run("valid profile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.toml")
		gt.NoError(t, os.WriteFile(path, []byte(`
endpoint = "https://forms.example.com/api"
employee_id = "1001"
employee_name = "Alice"
role = "OWNER"
credential = "token"
token_secret = "shhh"
`), 0600))

		cfg := Profile{path: path}
		data := gt.R1(cfg.Load()).NoError(t)
		gt.Value(t, data.Endpoint).Equal("https://forms.example.com/api")
		gt.Value(t, data.EmployeeID).Equal("1001")
		gt.Value(t, data.Credential).Equal("token")
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.toml")
		gt.NoError(t, os.WriteFile(path, []byte("endpoint = ["), 0600))

		cfg := Profile{path: path}
		_, err := cfg.Load()
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, ErrProfileParse)).Equal(true)
	})

	t.Run("invalid role", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.toml")
		gt.NoError(t, os.WriteFile(path, []byte(`role = "ADMIN"`), 0600))

		cfg := Profile{path: path}
		_, err := cfg.Load()
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, ErrInvalidConfig)).Equal(true)
	})

	t.Run("non-http endpoint", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.toml")
		gt.NoError(t, os.WriteFile(path, []byte(`endpoint = "forms.example.com"`), 0600))

		cfg := Profile{path: path}
		_, err := cfg.Load()
		gt.Error(t, err)
	})
}

func TestClientConfigure(t *testing.T) {
	t.Run("basic credential", func(t *testing.T) {
		cfg := Client{
			endpoint:   "https://forms.example.com/api",
			employeeID: "1001",
			credential: "basic",
			password:   "hunter2",
		}
		client, session, err := cfg.Configure()
		gt.NoError(t, err)
		gt.Value(t, client != nil).Equal(true)
		gt.Value(t, string(session.EmployeeID)).Equal("1001")
		// display name falls back to the employee ID
		gt.Value(t, session.EmployeeName).Equal("1001")
	})

	t.Run("token credential", func(t *testing.T) {
		cfg := Client{
			endpoint:    "https://forms.example.com/api",
			employeeID:  "1001",
			credential:  "token",
			tokenSecret: "shhh",
		}
		_, _, err := cfg.Configure()
		gt.NoError(t, err)
	})

	t.Run("missing endpoint", func(t *testing.T) {
		cfg := Client{employeeID: "1001", credential: "basic", password: "x"}
		_, _, err := cfg.Configure()
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, ErrInvalidConfig)).Equal(true)
	})

	t.Run("basic without password", func(t *testing.T) {
		cfg := Client{endpoint: "https://x.example.com", employeeID: "1001", credential: "basic"}
		_, _, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("unknown scheme", func(t *testing.T) {
		cfg := Client{endpoint: "https://x.example.com", employeeID: "1001", credential: "oauth"}
		_, _, err := cfg.Configure()
		gt.Error(t, err)
	})
}

func TestClientApplyProfile(t *testing.T) {
	cfg := Client{endpoint: "https://flag.example.com", credential: "basic"}
	cfg.ApplyProfile(&ProfileData{
		Endpoint:   "https://profile.example.com",
		EmployeeID: "1001",
		Credential: "token",
	})

	// flag values win; unset values come from the profile
	gt.Value(t, cfg.endpoint).Equal("https://flag.example.com")
	gt.Value(t, cfg.employeeID).Equal("1001")
	gt.Value(t, cfg.credential).Equal("token")
}
