package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmodule/classspace/module"
	"github.com/openmodule/classspace/registry"
)

func TestBuildModuleParsesCapabilitiesAndRequirements(t *testing.T) {
	man := manifest{
		BundleID: 1,
		ModuleID: 1,
		Capabilities: []manifestCap{
			{Namespace: "package", Package: "com.foo", Version: "1.0.0", Uses: []string{"com.bar"}},
		},
		Requirements: []manifestReq{
			{Filter: "(package=com.bar)", Optional: true},
		},
	}

	m, err := buildModule(man)
	require.NoError(t, err)
	assert.Equal(t, module.ID{BundleID: 1, ModuleID: 1}, m.ID())
	require.Len(t, m.Definition().Capabilities, 1)
	assert.Equal(t, []string{"com.bar"}, m.Definition().Capabilities[0].Uses)
	require.Len(t, m.Definition().Requirements, 1)
	assert.True(t, m.Definition().Requirements[0].Optional)
}

func TestBuildModuleDynamicRequirementGoesToDynamicSlice(t *testing.T) {
	man := manifest{
		Requirements: []manifestReq{
			{Filter: "(package=com.plugin)", Dynamic: true},
		},
	}

	m, err := buildModule(man)
	require.NoError(t, err)
	assert.Empty(t, m.Definition().Requirements)
	require.Len(t, m.Definition().DynamicRequirements, 1)
}

func TestBuildModuleInvalidVersionErrors(t *testing.T) {
	man := manifest{
		Capabilities: []manifestCap{{Namespace: "package", Package: "com.foo", Version: "not-a-version"}},
	}

	_, err := buildModule(man)
	assert.Error(t, err)
}

func TestBuildModuleInvalidFilterErrors(t *testing.T) {
	man := manifest{
		Requirements: []manifestReq{{Filter: "((("}},
	}

	_, err := buildModule(man)
	assert.Error(t, err)
}

func TestNewRootCommandRegistersSubcommands(t *testing.T) {
	reg := registry.New(nil)
	root := NewRootCommand(reg)

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["register"])
	assert.True(t, names["resolve"])
	assert.True(t, names["list"])
	assert.True(t, names["version"])
}

func TestResolveCommandErrorsOnUnknownModule(t *testing.T) {
	reg := registry.New(nil)
	root := NewRootCommand(reg)
	root.SetArgs([]string{"resolve", "--bundle", "99", "--module", "1"})

	err := root.Execute()
	assert.Error(t, err)
}
