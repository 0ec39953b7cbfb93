package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for form configuration parsing. A config parse failure is
// fatal for the form: callers render an error and do not partially recover.
var (
	ErrConfigParse        = goerr.New("malformed form configuration")
	ErrUnsupportedVersion = goerr.New("unsupported form configuration version")
)
