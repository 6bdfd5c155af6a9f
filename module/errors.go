package module

import "errors"

// Static errors for the module package: grouped sentinel errors wrapped
// with fmt.Errorf at the call site.
var (
	ErrInvalidVersion = errors.New("invalid version string")
	ErrInvalidFilter  = errors.New("invalid filter expression")
	ErrUnknownNamespace = errors.New("unknown capability namespace")
)

// Namespace is the tagged-variant enumeration for capability/requirement
// families. Future namespaces
// add a tag here, not a subclass.
type Namespace string

const (
	NamespacePackage Namespace = "package"
	NamespaceModule  Namespace = "module"
)
