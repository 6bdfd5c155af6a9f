package health

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmodule/classspace/module"
	"github.com/openmodule/classspace/registry"
)

type fakeContent struct{}

func (fakeContent) GetClass(name string) (any, bool)          { return nil, false }
func (fakeContent) GetResource(name string) (string, bool)    { return "", false }
func (fakeContent) GetResources(name string) ([]string, bool) { return nil, false }

func TestRegistryCheckerHealthyWhenAllResolved(t *testing.T) {
	reg := registry.New(nil)
	m := module.New(module.ID{BundleID: 1, ModuleID: 1}, module.Definition{}, fakeContent{}, nil)
	reg.AddModule(m)
	require.NoError(t, reg.Resolve(m))

	c := NewRegistryChecker(reg, 0.5)
	result, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusHealthy, result.Status)
}

func TestRegistryCheckerWarningBelowCriticalRatio(t *testing.T) {
	reg := registry.New(nil)
	resolved := module.New(module.ID{BundleID: 1, ModuleID: 1}, module.Definition{}, fakeContent{}, nil)
	unresolved := module.New(module.ID{BundleID: 2, ModuleID: 1}, module.Definition{}, fakeContent{}, nil)
	reg.AddModule(resolved)
	reg.AddModule(unresolved)
	require.NoError(t, reg.Resolve(resolved))

	c := NewRegistryChecker(reg, 0.9)
	result, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusWarning, result.Status)
	assert.Equal(t, 1, result.Details["unresolved_modules"])
}

func TestRegistryCheckerCriticalAtOrAboveRatio(t *testing.T) {
	reg := registry.New(nil)
	unresolved := module.New(module.ID{BundleID: 1, ModuleID: 1}, module.Definition{}, fakeContent{}, nil)
	reg.AddModule(unresolved)

	c := NewRegistryChecker(reg, 0.5)
	result, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusCritical, result.Status)
}

func TestRegistryCheckerHealthyWithNoModules(t *testing.T) {
	reg := registry.New(nil)
	c := NewRegistryChecker(reg, 0.5)
	result, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusHealthy, result.Status)
}
