package resolver

import (
	"fmt"

	"github.com/openmodule/classspace/module"
)

// Result is the outcome of a successful Resolve: the modules that became
// resolved and the wires to install on each, in commit order (package wires
// before module wires).
type Result struct {
	Modules []*module.Module
	Wires   map[module.ID][]module.Wire
}

// Resolve computes a consistent class space rooted at root: it populates
// candidate sets for every reachable non-optional requirement, searches for
// a combination with no uses conflicts via odometer backtracking, and
// returns the wires to commit. It never mutates root or any module it
// touches -- the caller applies the returned Result under its own lock.
func Resolve(host Host, root *module.Module) (*Result, error) {
	s := newState()
	populated := map[module.ID]bool{}
	if err := populate(host, root, s, populated); err != nil {
		return nil, err
	}

	if conflict := search(s); conflict != nil {
		return nil, &ResolveError{Module: root.ID(), Err: ErrNoConsistentClassSpace}
	}

	return commit(root, s)
}

// populate walks root and the module of every candidate of every
// requirement, building one CandidateSet per requirement that has
// candidates. Optional requirements with no candidates are simply skipped;
// optional requirements with candidates still get a CandidateSet so the
// search can wire them when consistent. An unsatisfied non-optional
// requirement of any walked module fails the whole populate.
func populate(host Host, m *module.Module, s *state, seen map[module.ID]bool) error {
	if seen[m.ID()] {
		return nil
	}
	seen[m.ID()] = true

	for _, req := range m.Definition().Requirements {
		sources := candidatesFor(host, req)
		if len(sources) == 0 {
			if req.Optional {
				continue
			}
			return &ResolveError{Module: m.ID(), Requirement: req, Err: ErrUnsatisfiedRequirement}
		}
		cs := NewCandidateSet(m, req, sources)
		s.sets = append(s.sets, cs)

		for _, src := range sources {
			if err := populate(host, src.Module, s, seen); err != nil {
				if req.Optional {
					continue
				}
				return err
			}
		}
	}
	return nil
}

// search runs the odometer: try the current tentative pick for every
// candidate set; on conflict, increment the flat configuration by always
// scanning from the first set, carrying into the next set whenever the
// current one rolls over. Returns the last conflict if no configuration
// ever proved consistent.
func search(s *state) *conflict {
	if len(s.sets) == 0 {
		return nil
	}

	for {
		s.invalidate()
		c := checkConsistency(s)
		if c == nil {
			return nil
		}
		if !incrementCandidateConfiguration(s.sets) {
			return c
		}
	}
}

// incrementCandidateConfiguration advances the flat odometer formed by sets
// to its next configuration, mirroring the original framework's
// incrementCandidateConfiguration: scan from the first set, bump the first
// one that still has another candidate, and roll every set before it back
// to its own first candidate. Returns false once every set has rolled over,
// meaning the whole configuration space is exhausted.
func incrementCandidateConfiguration(sets []*CandidateSet) bool {
	for _, cs := range sets {
		if cs.idx+1 < len(cs.Sources) {
			cs.idx++
			return true
		}
		cs.idx = 0
	}
	return false
}

// commit turns a consistent configuration's tentative picks into concrete
// wires, package wires before module wires, for every module
// touched by the search.
func commit(root *module.Module, s *state) (*Result, error) {
	touched := map[module.ID]*module.Module{root.ID(): root}
	for _, cs := range s.sets {
		touched[cs.Importer.ID()] = cs.Importer
		if src, ok := cs.Current(); ok {
			touched[src.Module.ID()] = src.Module
		}
	}

	wires := map[module.ID][]module.Wire{}
	for _, m := range touched {
		var pkgWires, modWires []module.Wire
		for _, cs := range s.sets {
			if cs.Importer.ID() != m.ID() {
				continue
			}
			src, ok := cs.Current()
			if !ok {
				continue
			}
			switch cs.Requirement.Namespace {
			case module.NamespacePackage:
				pkgWires = append(pkgWires, module.NewPackageWire(m, src.Module, src.Capability))
			case module.NamespaceModule:
				flattened := s.modulePackages(src.Module, map[module.ID]bool{})
				refs := map[string]*module.ResolvedPackageRef{}
				for pkg, rp := range flattened {
					refs[pkg] = rp.ToRef()
				}
				modWires = append(modWires, module.NewModuleWire(m, src.Module, src.Capability, refs))
			default:
				return nil, fmt.Errorf("resolver: %w: %s", module.ErrUnknownNamespace, cs.Requirement.Namespace)
			}
		}
		wires[m.ID()] = append(pkgWires, modWires...)
	}

	result := &Result{Wires: wires}
	for _, m := range touched {
		result.Modules = append(result.Modules, m)
	}
	return result, nil
}
