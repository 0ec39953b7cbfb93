package memory

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound indicates the requested entity does not exist in the store
var ErrNotFound = goerr.New("not found")
