// Package registry holds the set of modules known to the runtime and
// mediates every resolve: it is the single lock ("factory lock") guarding
// module addition, removal, and resolution, and the source of "in use"
// versus "unused" candidates the resolver consults.
package registry

import (
	"fmt"
	"sync"

	"github.com/openmodule/classspace/module"
	"github.com/openmodule/classspace/resolver"
)

// Registry is the module registry: an ordered set of modules plus the
// bookkeeping needed to answer the resolver's candidate queries and to
// notify listeners of resolution events.
type Registry struct {
	mu sync.Mutex // the factory lock; guards every field below

	modules   []*module.Module
	byID      map[module.ID]*module.Module
	inUseCaps map[string]map[module.ID]bool // package name -> exporter ids already wired
	listeners []ResolverListener
	log       Logger
}

// New builds an empty registry. log may be nil, in which case a no-op
// logger is used.
func New(log Logger) *Registry {
	if log == nil {
		log = noopLogger{}
	}
	return &Registry{
		byID:      map[module.ID]*module.Module{},
		inUseCaps: map[string]map[module.ID]bool{},
		log:       log,
	}
}

// AddModule registers m and fires moduleAdded on every listener. It does not
// resolve m; resolution is a separate, explicit step.
func (r *Registry) AddModule(m *module.Module) {
	r.mu.Lock()
	r.modules = append(r.modules, m)
	r.byID[m.ID()] = m
	listeners := append([]ResolverListener(nil), r.listeners...)
	r.mu.Unlock()

	r.log.Info("module added", "module_id", m.ID())
	for _, l := range listeners {
		l.ModuleAdded(m)
	}
}

// RemoveModule unregisters m. If m was resolved, this also fires
// moduleUnresolved: the implementation this registry is modeled on never
// fires that event on removal, but leaving a resolved module's wires
// dangling in listener state after it disappears is confusing enough that
// this port deliberately deviates and always fires it (recorded in the
// design ledger for this decision).
func (r *Registry) RemoveModule(id module.ID) {
	r.mu.Lock()
	m, ok := r.byID[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	wasResolved := m.IsResolved()
	delete(r.byID, id)
	for i, mod := range r.modules {
		if mod.ID() == id {
			r.modules = append(r.modules[:i], r.modules[i+1:]...)
			break
		}
	}
	for pkg, ids := range r.inUseCaps {
		delete(ids, id)
		if len(ids) == 0 {
			delete(r.inUseCaps, pkg)
		}
	}
	listeners := append([]ResolverListener(nil), r.listeners...)
	r.mu.Unlock()

	r.log.Info("module removed", "module_id", id, "was_resolved", wasResolved)
	for _, l := range listeners {
		if wasResolved {
			l.ModuleUnresolved(m)
		}
		l.ModuleRemoved(m)
	}
}

// Module looks up a module by handle.
func (r *Registry) Module(id module.ID) (*module.Module, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	return m, ok
}

// Modules returns a snapshot of every registered module.
func (r *Registry) Modules() []*module.Module {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*module.Module, len(r.modules))
	copy(out, r.modules)
	return out
}

// Resolve resolves root: computes a consistent class space and, if one
// exists, commits wires and marks every touched module resolved, all inside
// the factory lock, then fires moduleResolved for each. Once this returns,
// every reader observes a resolved module with a stable wire list.
func (r *Registry) Resolve(root *module.Module) error {
	r.mu.Lock()
	if root.IsResolved() {
		r.mu.Unlock()
		return nil
	}

	result, err := resolver.Resolve(r, root)
	if err != nil {
		r.mu.Unlock()
		r.log.Warn("resolve failed", "module_id", root.ID(), "error", err)
		return fmt.Errorf("registry: resolve %+v: %w", root.ID(), err)
	}

	for _, m := range result.Modules {
		m.SetWires(result.Wires[m.ID()])
		m.SetResolved(true)
		for _, w := range result.Wires[m.ID()] {
			if pkg := w.PackageName(); pkg != "" {
				if r.inUseCaps[pkg] == nil {
					r.inUseCaps[pkg] = map[module.ID]bool{}
				}
				r.inUseCaps[pkg][w.Exporter().ID()] = true
			}
		}
	}
	listeners := append([]ResolverListener(nil), r.listeners...)
	resolved := append([]*module.Module(nil), result.Modules...)
	r.mu.Unlock()

	r.log.Info("resolve succeeded", "module_id", root.ID(), "touched", len(resolved))
	for _, m := range resolved {
		for _, l := range listeners {
			l.ModuleResolved(m)
		}
	}
	return nil
}

// AddResolverListener registers l for future moduleAdded/moduleRemoved/
// moduleResolved/moduleUnresolved events. It uses
// copy-on-write so notification never holds the factory lock.
func (r *Registry) AddResolverListener(l ResolverListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(append([]ResolverListener(nil), r.listeners...), l)
}

func (r *Registry) RemoveResolverListener(l ResolverListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ResolverListener, 0, len(r.listeners))
	for _, existing := range r.listeners {
		if existing != l {
			out = append(out, existing)
		}
	}
	r.listeners = out
}

// InUseCandidates implements resolver.Host.
func (r *Registry) InUseCandidates(req module.Requirement) []resolver.PackageSource {
	r.mu.Lock()
	defer r.mu.Unlock()
	pkg := req.PackageName()
	inUse := r.inUseCaps[pkg]
	var out []resolver.PackageSource
	for _, m := range r.modules {
		if !inUse[m.ID()] {
			continue
		}
		for _, c := range m.Definition().Capabilities {
			if c.Namespace == module.NamespacePackage && req.IsSatisfied(c) {
				out = append(out, resolver.PackageSource{Module: m, Capability: c})
			}
		}
	}
	return out
}

// UnusedCandidates implements resolver.Host.
func (r *Registry) UnusedCandidates(req module.Requirement) []resolver.PackageSource {
	r.mu.Lock()
	defer r.mu.Unlock()
	pkg := req.PackageName()
	inUse := r.inUseCaps[pkg]
	var out []resolver.PackageSource
	for _, m := range r.modules {
		if inUse[m.ID()] {
			continue
		}
		if !r.securityPermits(m, pkg) {
			continue
		}
		for _, c := range m.Definition().Capabilities {
			if c.Namespace == module.NamespacePackage && req.IsSatisfied(c) {
				out = append(out, resolver.PackageSource{Module: m, Capability: c})
			}
		}
	}
	return out
}

// ModuleCandidates implements resolver.Host for require-module requirements.
func (r *Registry) ModuleCandidates(req module.Requirement) []resolver.PackageSource {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []resolver.PackageSource
	for _, m := range r.modules {
		for _, c := range m.Definition().Capabilities {
			if c.Namespace == module.NamespaceModule && req.IsSatisfied(c) {
				out = append(out, resolver.PackageSource{Module: m, Capability: c})
			}
		}
	}
	return out
}

// securityPermits gates a candidate export against the exporter's own
// security context.
func (r *Registry) securityPermits(m *module.Module, pkg string) bool {
	sec := m.SecurityContext()
	if sec == nil {
		return true
	}
	return sec.Implies(pkg)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Debug(string, ...any) {}
