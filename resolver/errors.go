package resolver

import (
	"errors"
	"fmt"

	"github.com/openmodule/classspace/module"
)

var (
	// ErrUnsatisfiedRequirement means a non-optional requirement had no
	// candidate at all.
	ErrUnsatisfiedRequirement = errors.New("unsatisfied requirement")
	// ErrNoConsistentClassSpace means every candidate combination the
	// odometer tried produced a uses conflict.
	ErrNoConsistentClassSpace = errors.New("no consistent class space")
)

// ResolveError reports why Resolve failed for one root module, including
// enough of the requirement chain to diagnose it.
type ResolveError struct {
	Module      module.ID
	Requirement module.Requirement
	Err         error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve module %+v: %v (requirement namespace=%s)", e.Module, e.Err, e.Requirement.Namespace)
}

func (e *ResolveError) Unwrap() error { return e.Err }
