package searchpolicy

import (
	"fmt"

	"github.com/openmodule/classspace/module"
)

// Diagnosis explains why a class or resource load did or didn't resolve
// against a module's current wires: unresolved module, no matching wire,
// wire present but exporter lacks the class, own content lacks it too, or
// found.
type Diagnosis struct {
	Module    string   `json:"module"`
	Name      string   `json:"name"`
	Package   string   `json:"package"`
	Found     bool     `json:"found"`
	Reason    string   `json:"reason"`
	WirePkgs  []string `json:"wired_packages"`
}

// DiagnoseClassLoad explains, without mutating anything, why FindClass on
// name against m's current (possibly stale) wire state would or wouldn't
// succeed. It never triggers resolution or dynamic import -- it is a
// read-only introspection tool.
func DiagnoseClassLoad(m *module.Module, name string) Diagnosis {
	pkg := classPackage(name)
	d := Diagnosis{Module: idString(m.ID()), Name: name, Package: pkg}

	if !m.IsResolved() {
		d.Reason = "module is unresolved: no wires exist yet, findClass would trigger resolution first"
		return d
	}

	wires := m.Wires()
	for _, w := range wires {
		if w.PackageName() != "" {
			d.WirePkgs = append(d.WirePkgs, w.PackageName())
		}
	}

	for _, w := range wires {
		if w.PackageName() != pkg {
			continue
		}
		if _, ok := w.GetClass(name); ok {
			d.Found = true
			d.Reason = "resolved via static wire for package " + pkg
			return d
		}
		d.Reason = "a wire exists for package " + pkg + " but the exporting module does not have the class"
		return d
	}

	if _, ok := m.ContentLoader().GetClass(name); ok {
		d.Found = true
		d.Reason = "found in the module's own content, no wire needed"
		return d
	}

	d.Reason = "no wire imports package " + pkg + " and the module's own content does not have the class; a dynamic import may still satisfy it"
	return d
}

func idString(id module.ID) string {
	return fmt.Sprintf("%d.%d", id.BundleID, id.ModuleID)
}
