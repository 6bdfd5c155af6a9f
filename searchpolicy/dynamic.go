package searchpolicy

import (
	"fmt"

	"github.com/openmodule/classspace/module"
	"github.com/openmodule/classspace/resolver"
)

// attemptDynamicImport finds a dynamic requirement on m whose pattern
// matches pkg, resolves it against the registry, and appends the resulting
// wire to m without disturbing any existing wire. It returns
// the new wire so the caller can retry its lookup against it immediately.
func (p *Policy) attemptDynamicImport(m *module.Module, pkg string) (module.Wire, error) {
	for _, req := range m.Definition().DynamicRequirements {
		if !req.MatchesDynamicPattern(pkg) {
			continue
		}
		w, err := resolver.ResolveDynamic(p.Reg, m, req, pkg)
		if err != nil {
			continue
		}
		m.AppendWire(w)
		return w, nil
	}
	return nil, fmt.Errorf("searchpolicy: no dynamic requirement matches package %q", pkg)
}
