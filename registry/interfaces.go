package registry

import "github.com/openmodule/classspace/module"

// Logger is the structured logging surface the registry writes to, matching
// the level-tagged variadic-args convention used across this codebase.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
}

// ResolverListener observes module lifecycle and resolution events
//. Implementations must not block or call back into the
// registry; notification happens outside the factory lock but on whatever
// goroutine triggered the event.
type ResolverListener interface {
	ModuleAdded(m *module.Module)
	ModuleRemoved(m *module.Module)
	ModuleResolved(m *module.Module)
	ModuleUnresolved(m *module.Module)
}
