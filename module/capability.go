package module

// Capability is an abstract offer by a module: "I export package p v1.2
// with uses {q,r}", or "I provide module lib". Namespace is one of
// NamespacePackage or NamespaceModule.
type Capability struct {
	Namespace  Namespace
	Properties Properties

	// Uses lists package names this capability's class space depends on and
	// wishes to constrain.
	Uses []string
}

// PackageName returns the "package" property for a package-namespace
// capability, or "" for anything else.
func (c Capability) PackageName() string {
	if c.Namespace != NamespacePackage {
		return ""
	}
	if v, ok := c.Properties.get("package"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// PackageVersion returns the "version" property for a package-namespace
// capability, defaulting to the zero Version (0.0.0) when absent.
func (c Capability) PackageVersion() Version {
	if v, ok := c.Properties.get("version"); ok {
		if ver, ok := v.(Version); ok {
			return ver
		}
	}
	return Version{}
}

// ModuleName returns the "module" property for a module-namespace
// capability (the symbolic name of the provided module).
func (c Capability) ModuleName() string {
	if c.Namespace != NamespaceModule {
		return ""
	}
	if v, ok := c.Properties.get("module"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Satisfies is true when the capability satisfies req: same namespace and
// req's filter matches the capability's properties.
func (c Capability) Satisfies(req Requirement) bool {
	if c.Namespace != req.Namespace {
		return false
	}
	if req.Filter == nil {
		return true
	}
	return req.Filter.Matches(c.Properties)
}
