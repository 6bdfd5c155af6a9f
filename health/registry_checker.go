package health

import (
	"context"
	"fmt"

	"github.com/openmodule/classspace/registry"
)

// RegistryChecker reports warning once any module has failed to resolve and
// critical once the unresolved fraction crosses the configured threshold,
// giving the httpapi /healthz route real depth instead of a bare "ok".
type RegistryChecker struct {
	reg           *registry.Registry
	criticalRatio float64
}

// NewRegistryChecker builds a RegistryChecker. criticalRatio is the fraction
// of unresolved modules (0 to 1) at or above which the check reports
// critical rather than warning; 0 disables the critical tier entirely.
func NewRegistryChecker(reg *registry.Registry, criticalRatio float64) *RegistryChecker {
	return &RegistryChecker{reg: reg, criticalRatio: criticalRatio}
}

func (c *RegistryChecker) Name() string { return "registry" }

func (c *RegistryChecker) Description() string {
	return "reports the fraction of registered modules that are unresolved"
}

func (c *RegistryChecker) Check(ctx context.Context) (*CheckResult, error) {
	modules := c.reg.Modules()
	total := len(modules)
	unresolved := 0
	for _, m := range modules {
		if !m.IsResolved() {
			unresolved++
		}
	}

	status := StatusHealthy
	var ratio float64
	if total > 0 {
		ratio = float64(unresolved) / float64(total)
		if c.criticalRatio > 0 && ratio >= c.criticalRatio {
			status = StatusCritical
		} else if unresolved > 0 {
			status = StatusWarning
		}
	}

	return &CheckResult{
		Name:    c.Name(),
		Status:  status,
		Message: fmt.Sprintf("%d/%d modules unresolved", unresolved, total),
		Details: map[string]interface{}{
			"total_modules":      total,
			"unresolved_modules": unresolved,
			"unresolved_ratio":   ratio,
		},
	}, nil
}
