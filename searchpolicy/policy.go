// Package searchpolicy implements the module-facing class and resource
// lookup operations layered on top of a resolved module: findClass,
// findResource, findResources, findLibrary, boot delegation, and dynamic
// import.
package searchpolicy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/openmodule/classspace/module"
	"github.com/openmodule/classspace/resolver"
)

var (
	// ErrClassNotFound means no boot delegation prefix, static wire, dynamic
	// import, or own content produced the class.
	ErrClassNotFound = errors.New("class not found")
	// ErrResourceNotFound mirrors ErrClassNotFound for resource lookups.
	ErrResourceNotFound = errors.New("resource not found")
)

// HostLoader answers boot-delegated and system-package lookups against the
// classpath the runtime process itself was started with, standing in for
// the JVM parent classloader in the original design.
type HostLoader interface {
	GetClass(name string) (any, bool)
	GetResource(name string) (string, bool)
	GetResources(name string) ([]string, bool)
}

// Resolver is the subset of registry.Registry the search policy needs: the
// ability to resolve a module lazily on first class-load attempt, and to
// act as a resolver.Host for dynamic import.
type Resolver interface {
	resolver.Host
	Resolve(root *module.Module) error
}

// Policy implements the class-space search policy for one runtime: a set
// of boot delegation prefixes, the host classloader they delegate to, and
// the registry used both to lazily resolve unresolved modules and to
// satisfy dynamic imports.
type Policy struct {
	BootDelegation []string
	Host           HostLoader
	Reg            Resolver
}

// isBootDelegated reports whether pkg matches one of the configured boot
// delegation prefixes: an entry "p.*" matches pkg == "p" or pkg starting
// with "p.", and an entry with no trailing ".*" must match pkg exactly.
func (p *Policy) isBootDelegated(pkg string) bool {
	for _, entry := range p.BootDelegation {
		if strings.HasSuffix(entry, ".*") {
			prefix := strings.TrimSuffix(entry, ".*")
			if pkg == prefix || strings.HasPrefix(pkg, prefix+".") {
				return true
			}
		} else if entry == pkg {
			return true
		}
	}
	return false
}

func classPackage(className string) string {
	if idx := strings.LastIndex(className, "."); idx >= 0 {
		return className[:idx]
	}
	return ""
}

func resourcePackage(resourceName string) string {
	name := strings.TrimPrefix(resourceName, "/")
	idx := strings.LastIndex(name, "/")
	if idx < 0 {
		return ""
	}
	return strings.ReplaceAll(name[:idx], "/", ".")
}

// ensureResolved lazily resolves m if it has not been resolved yet: the
// first class-load attempt against a module triggers its resolution.
func (p *Policy) ensureResolved(m *module.Module) error {
	if m.IsResolved() {
		return nil
	}
	return p.Reg.Resolve(m)
}

// CallerKind distinguishes who is asking FindClass to resolve name. The
// original design answered this by inspecting the calling thread's stack
// to tell a module's own class loader apart from the host framework
// falling back into module space; Go has no call-stack introspection to
// match, so it is an explicit argument instead.
type CallerKind int

const (
	// CallerModule is a module resolving one of its own class references:
	// the normal case, with no host-loader fallback beyond boot delegation.
	CallerModule CallerKind = iota
	// CallerHost is the runtime's own host loader asking whether some
	// module's class space can satisfy a class it could not find on its
	// own classpath: if every module-side avenue is exhausted, it also
	// gets one last unconditional look via the host loader itself.
	CallerHost
)

// FindClass looks up name against m's class space: boot delegation first,
// then the module's static wires, then its own content, then (if a dynamic
// requirement matches) a lazily created dynamic wire. On failure, the
// returned error wraps a diagnostic explaining which of those steps the
// lookup fell through at.
func (p *Policy) FindClass(m *module.Module, name string, caller CallerKind) (any, error) {
	pkg := classPackage(name)

	if p.isBootDelegated(pkg) {
		if v, ok := p.Host.GetClass(name); ok {
			return v, nil
		}
	}

	if err := p.ensureResolved(m); err != nil {
		return nil, fmt.Errorf("searchpolicy: resolve before find class %q: %w", name, err)
	}

	for _, w := range m.Wires() {
		if w.PackageName() == pkg {
			if v, ok := w.GetClass(name); ok {
				return v, nil
			}
		}
	}

	if v, ok := m.ContentLoader().GetClass(name); ok {
		return v, nil
	}

	if v, err := p.attemptDynamicImport(m, pkg); err == nil {
		if got, ok := v.GetClass(name); ok {
			return got, nil
		}
	}

	if caller == CallerHost {
		if v, ok := p.Host.GetClass(name); ok {
			return v, nil
		}
	}

	diag := DiagnoseClassLoad(m, name)
	return nil, fmt.Errorf("%w: %s in module %+v: %s", ErrClassNotFound, name, m.ID(), diag.Reason)
}

// FindResource mirrors FindClass for resources.
func (p *Policy) FindResource(m *module.Module, name string) (string, error) {
	pkg := resourcePackage(name)

	if p.isBootDelegated(pkg) {
		if v, ok := p.Host.GetResource(name); ok {
			return v, nil
		}
	}

	// Unlike FindClass, a resource lookup tolerates a failed resolve: a
	// module's own content loader may still legitimately have the resource
	// even if its requirements could not all be satisfied, so a resolve
	// error falls through to the content-loader check instead of aborting.
	resolveErr := p.ensureResolved(m)
	if resolveErr == nil {
		for _, w := range m.Wires() {
			if w.PackageName() == pkg {
				if v, ok := w.GetResource(name); ok {
					return v, nil
				}
			}
		}
	}

	if v, ok := m.ContentLoader().GetResource(name); ok {
		return v, nil
	}

	if resolveErr == nil {
		if wire, err := p.attemptDynamicImport(m, pkg); err == nil {
			if got, ok := wire.GetResource(name); ok {
				return got, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s in module %+v", ErrResourceNotFound, name, m.ID())
}

// FindResources aggregates every resource matching name from boot
// delegation, every matching wire, and the module's own content: unlike
// FindClass/FindResource, which stop at the first hit, this returns the
// union across every visible source.
func (p *Policy) FindResources(m *module.Module, name string) ([]string, error) {
	pkg := resourcePackage(name)
	var out []string
	seen := map[string]bool{}
	add := func(vs []string) {
		for _, v := range vs {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}

	if p.isBootDelegated(pkg) {
		if vs, ok := p.Host.GetResources(name); ok {
			add(vs)
		}
	}

	// Same carve-out as FindResource: a resolve failure still falls through
	// to the module's own content rather than aborting the whole lookup.
	if resolveErr := p.ensureResolved(m); resolveErr == nil {
		for _, w := range m.Wires() {
			if w.PackageName() == pkg {
				if vs, ok := w.GetResources(name); ok {
					add(vs)
				}
			}
		}
	}

	if vs, ok := m.ContentLoader().GetResources(name); ok {
		add(vs)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s in module %+v", ErrResourceNotFound, name, m.ID())
	}
	return out, nil
}

// FindLibrary never delegates through wires -- native libraries are
// per-module.
func (p *Policy) FindLibrary(m *module.Module, name string) (string, bool) {
	return m.FindLibrary(name)
}
