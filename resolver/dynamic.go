package resolver

import "github.com/openmodule/classspace/module"

// ResolveDynamic attempts to wire a single dynamic-import requirement for
// pkg on behalf of importer, without disturbing any existing wire. It builds a one-requirement candidate set, constrains it to pkg via
// module.AndFilter/module.PackageNameFilter, and runs the same
// populate+search+commit pipeline scoped to that single package. On
// success it returns the wire to append; the caller (search policy) is
// responsible for calling module.Module.AppendWire.
func ResolveDynamic(host Host, importer *module.Module, dynReq module.Requirement, pkg string) (module.Wire, error) {
	req := module.Requirement{
		Namespace: module.NamespacePackage,
		Filter:    module.AndFilter(dynReq.Filter, module.PackageNameFilter(pkg)),
		Optional:  false,
	}

	sources := candidatesFor(host, req)
	if len(sources) == 0 {
		return nil, &ResolveError{Module: importer.ID(), Requirement: req, Err: ErrUnsatisfiedRequirement}
	}

	s := newState()
	cs := NewCandidateSet(importer, req, sources)
	s.sets = append(s.sets, cs)

	seen := map[module.ID]bool{importer.ID(): true}
	for _, src := range sources {
		_ = populate(host, src.Module, s, seen)
	}

	if c := search(s); c != nil {
		return nil, &ResolveError{Module: importer.ID(), Requirement: req, Err: ErrNoConsistentClassSpace}
	}

	src, _ := cs.Current()
	return module.NewPackageWire(importer, src.Module, src.Capability), nil
}
