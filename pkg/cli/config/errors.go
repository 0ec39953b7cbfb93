package config

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidConfig = goerr.New("invalid configuration")
	ErrProfileParse  = goerr.New("failed to parse profile")
)
