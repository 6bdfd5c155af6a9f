package resolver

import "github.com/openmodule/classspace/module"

// Host is the registry-side view the resolver needs: where to find
// candidates for a requirement, split into already-wired ("in use") and
// not-yet-wired ("unused") sources. The registry implements this; the
// resolver never mutates registry state directly, only through commit.
type Host interface {
	// InUseCandidates returns sources for req that some already-resolved
	// module has already selected for this package -- preferring these
	// avoids introducing a fresh uses conflict.
	InUseCandidates(req module.Requirement) []PackageSource
	// UnusedCandidates returns sources for req that no resolved module has
	// selected yet.
	UnusedCandidates(req module.Requirement) []PackageSource
	// ModuleCandidates returns sources for a module-namespace requirement
	// (require-module), both in-use and unused, combined.
	ModuleCandidates(req module.Requirement) []PackageSource
}

// candidatesFor orders in-use sources ahead of unused ones: reusing an
// already-wired source can't introduce a new uses conflict that a fresh one
// might.
func candidatesFor(host Host, req module.Requirement) []PackageSource {
	if req.Namespace == module.NamespaceModule {
		out := host.ModuleCandidates(req)
		sortSources(out)
		return out
	}
	inUse := host.InUseCandidates(req)
	unused := host.UnusedCandidates(req)
	sortSources(inUse)
	sortSources(unused)
	return append(inUse, unused...)
}
