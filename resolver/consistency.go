package resolver

import "github.com/openmodule/classspace/module"

// state holds the resolver's working memory during one search: every
// candidate set discovered so far, keyed by (importer, requirement index)
// order of discovery, plus the per-module package view computed from the
// current tentative picks.
type state struct {
	sets []*CandidateSet
	// packages caches each module's calculated package view for the current
	// tentative configuration; invalidated (cleared) after every Advance.
	packages map[module.ID]map[string]*ResolvedPackage
}

func newState() *state {
	return &state{packages: map[module.ID]map[string]*ResolvedPackage{}}
}

func (s *state) invalidate() {
	s.packages = map[module.ID]map[string]*ResolvedPackage{}
}

// modulePackages computes the set of packages visible in m's class space
// given the current tentative candidate picks: m's own exported packages,
// plus whatever its wired requirements resolve to, plus (transitively)
// what any required modules make visible through re-export.
func (s *state) modulePackages(m *module.Module, visiting map[module.ID]bool) map[string]*ResolvedPackage {
	if cached, ok := s.packages[m.ID()]; ok {
		return cached
	}
	if visiting[m.ID()] {
		return map[string]*ResolvedPackage{}
	}
	visiting[m.ID()] = true

	out := map[string]*ResolvedPackage{}
	for _, cap := range m.Definition().Capabilities {
		if cap.Namespace != module.NamespacePackage {
			continue
		}
		pkg := cap.PackageName()
		rp := NewResolvedPackage(pkg, PackageSource{Module: m, Capability: cap})
		out[pkg] = rp
	}

	for _, cs := range s.sets {
		if cs.Importer.ID() != m.ID() {
			continue
		}
		src, ok := cs.Current()
		if !ok {
			continue
		}
		if cs.Requirement.Namespace == module.NamespacePackage {
			pkg := src.Capability.PackageName()
			rp, ok := out[pkg]
			if !ok {
				rp = NewResolvedPackage(pkg)
				out[pkg] = rp
			}
			rp.Add(src)
		} else {
			// Module requirement: flatten the required module's own visible
			// packages into ours.
			required := s.modulePackages(src.Module, visiting)
			for pkg, rp := range required {
				mine, ok := out[pkg]
				if !ok {
					mine = NewResolvedPackage(pkg)
					out[pkg] = mine
				}
				mine.Merge(rp)
			}
		}
	}

	s.packages[m.ID()] = out
	return out
}

// usesConstraints resolves cap's Uses package names to the ResolvedPackage
// each currently resolves to from the exporting module's own class space,
// transitively following each used package's own uses list. Each step of
// the walk recomputes the package view from the module that actually
// provided the previous step's source, not from the original exporter, so
// a multi-level uses chain (A uses q -> D, D uses s -> S) keeps resolving
// against the right module's own view as it descends.
func (s *state) usesConstraints(exporter *module.Module, cap module.Capability, seen map[string]bool) map[string]*ResolvedPackage {
	out := map[string]*ResolvedPackage{}

	var walk func(m *module.Module, pkg string)
	walk = func(m *module.Module, pkg string) {
		if seen[pkg] {
			return
		}
		seen[pkg] = true
		pkgs := s.modulePackages(m, map[module.ID]bool{})
		rp, ok := pkgs[pkg]
		if !ok {
			return
		}
		out[pkg] = rp
		for _, src := range rp.Sources {
			for _, used := range src.Capability.Uses {
				walk(src.Module, used)
			}
		}
	}
	for _, u := range cap.Uses {
		walk(exporter, u)
	}
	return out
}

// conflict names the package that disagreed between two ResolvedPackage
// views for the same package name.
type conflict struct {
	pkg string
}

// checkConsistency scans every candidate set's current pick and verifies
// its uses constraints agree with what each importer's own class space
// resolves those packages to. Two views of the same package are compatible
// only if one is a subset of the other. The first conflict
// found is returned; nil means the current configuration is consistent.
func checkConsistency(s *state) *conflict {
	for _, cs := range s.sets {
		src, ok := cs.Current()
		if !ok {
			continue
		}
		if cs.Requirement.Namespace != module.NamespacePackage {
			continue
		}
		constraints := s.usesConstraints(src.Module, src.Capability, map[string]bool{})
		importerPkgs := s.modulePackages(cs.Importer, map[module.ID]bool{})
		for pkg, want := range constraints {
			have, ok := importerPkgs[pkg]
			if !ok {
				continue
			}
			if !want.IsSubsetOf(have) && !have.IsSubsetOf(want) {
				return &conflict{pkg: pkg}
			}
		}
	}
	return nil
}
