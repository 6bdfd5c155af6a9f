package module

// Wire is a committed binding of one requirement of an importer to one
// capability of an exporter. It exposes the same three-shaped lookup as
// ContentLoader so the search policy can walk a module's wires uniformly
// regardless of whether they resolve a package or a required module.
type Wire interface {
	Importer() *Module
	Exporter() *Module
	Capability() Capability
	PackageName() string

	GetClass(name string) (any, bool)
	GetResource(name string) (string, bool)
	GetResources(name string) ([]string, bool)
}

// PackageWire resolves one package requirement directly against a single
// exporting module.
type PackageWire struct {
	importer, exporter *Module
	cap                Capability
}

// NewPackageWire builds a package wire. cap must be a package-namespace
// capability of exporter.
func NewPackageWire(importer, exporter *Module, cap Capability) *PackageWire {
	return &PackageWire{importer: importer, exporter: exporter, cap: cap}
}

func (w *PackageWire) Importer() *Module     { return w.importer }
func (w *PackageWire) Exporter() *Module     { return w.exporter }
func (w *PackageWire) Capability() Capability { return w.cap }
func (w *PackageWire) PackageName() string    { return w.cap.PackageName() }

func (w *PackageWire) GetClass(name string) (any, bool) {
	return walkClass(w.exporter, name, w.PackageName(), map[ID]bool{w.importer.ID(): true})
}

func (w *PackageWire) GetResource(name string) (string, bool) {
	return walkResource(w.exporter, name, w.PackageName(), map[ID]bool{w.importer.ID(): true})
}

func (w *PackageWire) GetResources(name string) ([]string, bool) {
	return walkResources(w.exporter, name, w.PackageName(), map[ID]bool{w.importer.ID(): true})
}

// ModuleWire resolves a require-module dependency and carries the flattened
// package set transitively exported through that module. Every package in
// Flattened is assumed fully re-exported; partial re-export through a
// required module is a known gap, not modeled here.
type ModuleWire struct {
	importer, exporter *Module
	cap                Capability
	Flattened          map[string]*ResolvedPackageRef
}

// ResolvedPackageRef mirrors resolver.ResolvedPackage without importing the
// resolver package (which itself depends on module), avoiding an import
// cycle. The resolver's commit step builds it with ResolvedPackage.ToRef.
type ResolvedPackageRef struct {
	Name    string
	Sources []PackageSourceRef
}

// PackageSourceRef is a (module, capability) pair, mirroring
// resolver.PackageSource for the same import-cycle reason as
// ResolvedPackageRef.
type PackageSourceRef struct {
	Module     *Module
	Capability Capability
}

func NewModuleWire(importer, exporter *Module, cap Capability, flattened map[string]*ResolvedPackageRef) *ModuleWire {
	return &ModuleWire{importer: importer, exporter: exporter, cap: cap, Flattened: flattened}
}

func (w *ModuleWire) Importer() *Module      { return w.importer }
func (w *ModuleWire) Exporter() *Module      { return w.exporter }
func (w *ModuleWire) Capability() Capability { return w.cap }
func (w *ModuleWire) PackageName() string    { return "" }

func (w *ModuleWire) sourcesFor(pkgName string) []PackageSourceRef {
	if rp, ok := w.Flattened[pkgName]; ok {
		return rp.Sources
	}
	return nil
}

func (w *ModuleWire) GetClass(name string) (any, bool) {
	pkg := classPackage(name)
	visited := map[ID]bool{w.importer.ID(): true}
	for _, src := range w.sourcesFor(pkg) {
		if v, ok := walkClass(src.Module, name, pkg, visited); ok {
			return v, true
		}
	}
	return nil, false
}

func (w *ModuleWire) GetResource(name string) (string, bool) {
	pkg := resourcePackage(name)
	visited := map[ID]bool{w.importer.ID(): true}
	for _, src := range w.sourcesFor(pkg) {
		if v, ok := walkResource(src.Module, name, pkg, visited); ok {
			return v, true
		}
	}
	return "", false
}

func (w *ModuleWire) GetResources(name string) ([]string, bool) {
	pkg := resourcePackage(name)
	visited := map[ID]bool{w.importer.ID(): true}
	for _, src := range w.sourcesFor(pkg) {
		if v, ok := walkResources(src.Module, name, pkg, visited); ok {
			return v, true
		}
	}
	return nil, false
}

// walkClass looks for name first among m's own static wires for pkgName (so
// a re-exporting module's own imports are honored), then in m's own
// content. visited guards against modules that wire back to each other for
// the same package, which would otherwise recurse forever: package wires
// are followed with the same visited map rather than through their own
// GetClass, which would start a fresh one.
func walkClass(m *Module, name, pkgName string, visited map[ID]bool) (any, bool) {
	if visited[m.ID()] {
		return nil, false
	}
	visited[m.ID()] = true

	for _, w := range m.Wires() {
		if w.PackageName() == pkgName {
			if pw, isPkg := w.(*PackageWire); isPkg {
				if v, ok := walkClass(pw.exporter, name, pkgName, visited); ok {
					return v, true
				}
			} else if v, ok := w.GetClass(name); ok {
				return v, true
			}
		}
	}
	return m.ContentLoader().GetClass(name)
}

func walkResource(m *Module, name, pkgName string, visited map[ID]bool) (string, bool) {
	if visited[m.ID()] {
		return "", false
	}
	visited[m.ID()] = true

	for _, w := range m.Wires() {
		if w.PackageName() == pkgName {
			if pw, isPkg := w.(*PackageWire); isPkg {
				if v, ok := walkResource(pw.exporter, name, pkgName, visited); ok {
					return v, true
				}
			} else if v, ok := w.GetResource(name); ok {
				return v, true
			}
		}
	}
	return m.ContentLoader().GetResource(name)
}

func walkResources(m *Module, name, pkgName string, visited map[ID]bool) ([]string, bool) {
	if visited[m.ID()] {
		return nil, false
	}
	visited[m.ID()] = true

	for _, w := range m.Wires() {
		if w.PackageName() == pkgName {
			if pw, isPkg := w.(*PackageWire); isPkg {
				if v, ok := walkResources(pw.exporter, name, pkgName, visited); ok {
					return v, true
				}
			} else if v, ok := w.GetResources(name); ok {
				return v, true
			}
		}
	}
	return m.ContentLoader().GetResources(name)
}
