package classspace

import "errors"

// Runtime-level errors: grouped sentinel errors wrapped with fmt.Errorf at
// the call site.
var (
	ErrLoggerRequired   = errors.New("logger is required")
	ErrRegistryRequired = errors.New("registry is required")
	ErrConfigPathEmpty  = errors.New("config path is empty")
	ErrAlreadyStarted   = errors.New("runtime already started")
	ErrNotStarted       = errors.New("runtime not started")
)
