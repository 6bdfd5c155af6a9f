package module

import "strings"

// Requirement is an abstract demand expressed as a filter over capability
// properties.
type Requirement struct {
	Namespace Namespace
	Filter    Filter

	// Optional means failure to satisfy this requirement is tolerated.
	Optional bool

	// Dynamic means a wire for this requirement may be added lazily after
	// resolution, via the search policy's dynamic import path.
	Dynamic bool
}

// NewPackageRequirement builds a package-namespace requirement, parsing its
// filter expression. A malformed expression returns ParseFilter's error,
// which wraps ErrInvalidFilter.
func NewPackageRequirement(filterExpr string, optional, dynamic bool) (Requirement, error) {
	f, err := ParseFilter(filterExpr)
	if err != nil {
		return Requirement{}, err
	}
	return Requirement{Namespace: NamespacePackage, Filter: f, Optional: optional, Dynamic: dynamic}, nil
}

// PackageName extracts the package name from a package requirement's filter.
// It returns "*" or a wildcarded prefix unmodified for dynamic-only
// requirements, and "" if no package clause is present (module-namespace
// requirements, or malformed dynamic patterns).
func (r Requirement) PackageName() string {
	name, _ := extractPackageName(r.Filter)
	return name
}

// extractPackageName walks a Filter tree looking for a "(package=X)" or
// "(package=X.*)"-shaped comparison clause, or a "(package=*)" presence
// clause, which it reports as "*". It is intentionally shallow: the
// grammar only ever nests such a clause directly, or as one conjunct of a
// top-level AND, which is exactly what a dynamic import's constrained
// filter builds by conjoining the pattern with "(package=pkg)".
func extractPackageName(f Filter) (string, bool) {
	switch v := f.(type) {
	case comparisonFilter:
		if strings.EqualFold(v.key, "package") && v.op == "=" {
			return v.value, true
		}
	case presenceFilter:
		if strings.EqualFold(v.key, "package") {
			return "*", true
		}
	case andFilter:
		for _, sub := range v {
			if name, ok := extractPackageName(sub); ok {
				return name, ok
			}
		}
	}
	return "", false
}

// MatchesDynamicPattern reports whether this dynamic requirement's package
// pattern matches pkg: the pattern matches if its package name is "*",
// equals pkg, or is a wildcard prefix "p." with pkg == p or pkg starting
// with "p.".
func (r Requirement) MatchesDynamicPattern(pkg string) bool {
	pattern := r.PackageName()
	wildcard := strings.HasSuffix(pattern, ".*")
	if wildcard {
		pattern = strings.TrimSuffix(pattern, ".*")
	}
	if pattern == "*" || pkg == pattern {
		return true
	}
	return wildcard && strings.HasPrefix(pkg, pattern+".")
}

// IsSatisfied reports whether cap satisfies this requirement.
func (r Requirement) IsSatisfied(cap Capability) bool {
	return cap.Satisfies(r)
}
