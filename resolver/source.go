// Package resolver implements the class-space search policy's resolve
// algorithm: populating candidates for every requirement, searching for a
// consistent class space via "uses" constraint propagation with odometer
// backtracking, and committing the winning candidate set as wires.
package resolver

import "github.com/openmodule/classspace/module"

// PackageSource pairs an exporting module with the specific capability it
// offers, the atomic unit the resolver reasons about.
// Sources are ordered by descending version, then ascending module id, so
// "highest version wins, oldest module breaks ties" falls out of a plain
// sort rather than a special case.
type PackageSource struct {
	Module     *module.Module
	Capability module.Capability
}

// Less implements the PackageSource ordering used throughout the resolver:
// higher version first, then lower bundle id.
func (a PackageSource) Less(b PackageSource) bool {
	av, bv := a.Capability.PackageVersion(), b.Capability.PackageVersion()
	if c := av.Compare(bv); c != 0 {
		return c > 0
	}
	return a.Module.ID().BundleID < b.Module.ID().BundleID
}

func (a PackageSource) Equal(b PackageSource) bool {
	return a.Module.ID() == b.Module.ID() && a.Capability.PackageName() == b.Capability.PackageName() &&
		a.Capability.PackageVersion().Compare(b.Capability.PackageVersion()) == 0
}

// sortSources sorts a slice of PackageSource in place by the canonical
// ordering, via plain insertion sort: candidate lists are small (a handful
// of providers per package in practice) so this avoids importing sort's
// interface boilerplate for a one-off comparator, matching the size of
// similar helper loops elsewhere in this package.
func sortSources(s []PackageSource) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j].Less(s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// ResolvedPackage is a package name together with the set of sources
// currently believed to provide it in a module's class space. Sets compare as unordered: Equal and IsSubsetOf only care
// about membership.
type ResolvedPackage struct {
	Name    string
	Sources []PackageSource
}

func NewResolvedPackage(name string, sources ...PackageSource) *ResolvedPackage {
	rp := &ResolvedPackage{Name: name}
	rp.Sources = append(rp.Sources, sources...)
	return rp
}

// Add merges src into the set if not already present, returning whether the
// set changed.
func (rp *ResolvedPackage) Add(src PackageSource) bool {
	for _, s := range rp.Sources {
		if s.Equal(src) {
			return false
		}
	}
	rp.Sources = append(rp.Sources, src)
	return true
}

// Merge adds every source of other into rp, returning whether rp changed.
func (rp *ResolvedPackage) Merge(other *ResolvedPackage) bool {
	changed := false
	for _, s := range other.Sources {
		if rp.Add(s) {
			changed = true
		}
	}
	return changed
}

// IsSubsetOf reports whether every source in rp also appears in other --
// the comparison the consistency checker uses to decide whether two
// candidate class spaces for the same package actually conflict.
func (rp *ResolvedPackage) IsSubsetOf(other *ResolvedPackage) bool {
	for _, s := range rp.Sources {
		found := false
		for _, o := range other.Sources {
			if s.Equal(o) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (rp *ResolvedPackage) Contains(m *module.Module) bool {
	for _, s := range rp.Sources {
		if s.Module.ID() == m.ID() {
			return true
		}
	}
	return false
}

// ToRef converts rp into the module-package view used by module.ModuleWire,
// so wire commit can hand a module wire its flattened package set without
// the module package importing resolver (which would cycle).
func (rp *ResolvedPackage) ToRef() *module.ResolvedPackageRef {
	ref := &module.ResolvedPackageRef{Name: rp.Name}
	for _, s := range rp.Sources {
		ref.Sources = append(ref.Sources, module.PackageSourceRef{Module: s.Module, Capability: s.Capability})
	}
	return ref
}
