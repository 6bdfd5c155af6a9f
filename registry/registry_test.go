package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmodule/classspace/module"
)

type fakeContent struct{}

func (fakeContent) GetClass(name string) (any, bool)          { return nil, false }
func (fakeContent) GetResource(name string) (string, bool)    { return "", false }
func (fakeContent) GetResources(name string) ([]string, bool) { return nil, false }

func pkgCap(t *testing.T, pkg, ver string) module.Capability {
	t.Helper()
	v, err := module.ParseVersion(ver)
	require.NoError(t, err)
	return module.Capability{Namespace: module.NamespacePackage, Properties: module.Properties{"package": pkg, "version": v}}
}

func newModule(t *testing.T, bundleID int64, caps []module.Capability, reqs []module.Requirement) *module.Module {
	t.Helper()
	def := module.Definition{Capabilities: caps, Requirements: reqs}
	return module.New(module.ID{BundleID: bundleID, ModuleID: 1}, def, fakeContent{}, nil)
}

func packageReq(t *testing.T, expr string, optional bool) module.Requirement {
	t.Helper()
	req, err := module.NewPackageRequirement(expr, optional, false)
	require.NoError(t, err)
	return req
}

type recordingListener struct {
	added, removed, resolved, unresolved []module.ID
}

func (l *recordingListener) ModuleAdded(m *module.Module)      { l.added = append(l.added, m.ID()) }
func (l *recordingListener) ModuleRemoved(m *module.Module)    { l.removed = append(l.removed, m.ID()) }
func (l *recordingListener) ModuleResolved(m *module.Module)   { l.resolved = append(l.resolved, m.ID()) }
func (l *recordingListener) ModuleUnresolved(m *module.Module) { l.unresolved = append(l.unresolved, m.ID()) }

func TestAddModuleFiresListenerAndIsLookupable(t *testing.T) {
	reg := New(nil)
	l := &recordingListener{}
	reg.AddResolverListener(l)

	m := newModule(t, 1, nil, nil)
	reg.AddModule(m)

	got, ok := reg.Module(m.ID())
	assert.True(t, ok)
	assert.Same(t, m, got)
	assert.Equal(t, []module.ID{m.ID()}, l.added)
	assert.Len(t, reg.Modules(), 1)
}

func TestRemoveModuleFiresUnresolvedWhenWasResolved(t *testing.T) {
	reg := New(nil)
	l := &recordingListener{}
	reg.AddResolverListener(l)

	exporter := newModule(t, 2, []module.Capability{pkgCap(t, "com.foo", "1.0.0")}, nil)
	importer := newModule(t, 1, nil, []module.Requirement{packageReq(t, "(package=com.foo)", false)})
	reg.AddModule(exporter)
	reg.AddModule(importer)

	require.NoError(t, reg.Resolve(importer))
	require.True(t, importer.IsResolved())

	reg.RemoveModule(importer.ID())

	_, ok := reg.Module(importer.ID())
	assert.False(t, ok)
	assert.Contains(t, l.removed, importer.ID())
	assert.Contains(t, l.unresolved, importer.ID(), "removing a resolved module should fire moduleUnresolved")
}

func TestRemoveModuleOfNeverResolvedDoesNotFireUnresolved(t *testing.T) {
	reg := New(nil)
	l := &recordingListener{}
	reg.AddResolverListener(l)

	m := newModule(t, 1, nil, nil)
	reg.AddModule(m)
	reg.RemoveModule(m.ID())

	assert.Contains(t, l.removed, m.ID())
	assert.Empty(t, l.unresolved)
}

func TestResolveWiresAndMarksResolvedAndFiresListener(t *testing.T) {
	reg := New(nil)
	l := &recordingListener{}
	reg.AddResolverListener(l)

	exporter := newModule(t, 2, []module.Capability{pkgCap(t, "com.foo", "1.0.0")}, nil)
	importer := newModule(t, 1, nil, []module.Requirement{packageReq(t, "(package=com.foo)", false)})
	reg.AddModule(exporter)
	reg.AddModule(importer)

	require.NoError(t, reg.Resolve(importer))

	assert.True(t, importer.IsResolved())
	require.Len(t, importer.Wires(), 1)
	assert.Same(t, exporter, importer.Wires()[0].Exporter())
	assert.Contains(t, l.resolved, importer.ID())
}

func TestResolveIsIdempotentOnceResolved(t *testing.T) {
	reg := New(nil)
	l := &recordingListener{}
	reg.AddResolverListener(l)

	importer := newModule(t, 1, nil, nil)
	reg.AddModule(importer)

	require.NoError(t, reg.Resolve(importer))
	require.NoError(t, reg.Resolve(importer))

	assert.Len(t, l.resolved, 1, "resolving an already-resolved module a second time is a no-op")
}

func TestResolveFailsWithUnsatisfiedRequiredDependency(t *testing.T) {
	reg := New(nil)
	importer := newModule(t, 1, nil, []module.Requirement{packageReq(t, "(package=com.missing)", false)})
	reg.AddModule(importer)

	err := reg.Resolve(importer)
	require.Error(t, err)
	assert.False(t, importer.IsResolved())
}

func TestUnusedCandidatesExcludesInUseExporters(t *testing.T) {
	reg := New(nil)
	exporter := newModule(t, 2, []module.Capability{pkgCap(t, "com.foo", "1.0.0")}, nil)
	importer := newModule(t, 1, nil, []module.Requirement{packageReq(t, "(package=com.foo)", false)})
	reg.AddModule(exporter)
	reg.AddModule(importer)

	req := packageReq(t, "(package=com.foo)", false)
	assert.Len(t, reg.UnusedCandidates(req), 1)
	assert.Empty(t, reg.InUseCandidates(req))

	require.NoError(t, reg.Resolve(importer))

	assert.Empty(t, reg.UnusedCandidates(req), "once wired, the exporter moves from unused to in-use")
	assert.Len(t, reg.InUseCandidates(req), 1)
}

type denySecurity struct{}

func (denySecurity) Implies(pkg string) bool { return false }

func TestUnusedCandidatesFiltersOnSecurityContext(t *testing.T) {
	reg := New(nil)
	def := module.Definition{Capabilities: []module.Capability{pkgCap(t, "com.foo", "1.0.0")}}
	exporter := module.New(module.ID{BundleID: 2, ModuleID: 1}, def, fakeContent{}, denySecurity{})
	reg.AddModule(exporter)

	req := packageReq(t, "(package=com.foo)", false)
	assert.Empty(t, reg.UnusedCandidates(req), "a security context that denies the package should hide the export")
}

func TestRemoveModuleUnknownIDIsNoop(t *testing.T) {
	reg := New(nil)
	reg.RemoveModule(module.ID{BundleID: 99, ModuleID: 1})
}

func TestRemoveResolverListenerStopsFutureNotifications(t *testing.T) {
	reg := New(nil)
	l := &recordingListener{}
	reg.AddResolverListener(l)
	reg.RemoveResolverListener(l)

	reg.AddModule(newModule(t, 1, nil, nil))
	assert.Empty(t, l.added)
}
