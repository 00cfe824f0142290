package todolist

import "errors"

var (
	// ErrValidation means required input was missing or malformed. Nothing changed.
	ErrValidation = errors.New("validation failed")
	// ErrGateway means the remote call failed. The store is left as it was.
	ErrGateway = errors.New("gateway request failed")
	// ErrNotFound means the id is not in the store. Treated as a no-op.
	ErrNotFound = errors.New("todo not found")
	// ErrNoEditSession means Update was called without a matching BeginEdit.
	ErrNoEditSession = errors.New("no edit in progress for this todo")
)
