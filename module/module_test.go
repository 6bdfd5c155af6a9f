package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeContent struct {
	classes   map[string]any
	resources map[string]string
	multi     map[string][]string
}

func newFakeContent() *fakeContent {
	return &fakeContent{
		classes:   map[string]any{},
		resources: map[string]string{},
		multi:     map[string][]string{},
	}
}

func (f *fakeContent) GetClass(name string) (any, bool) {
	v, ok := f.classes[name]
	return v, ok
}

func (f *fakeContent) GetResource(name string) (string, bool) {
	v, ok := f.resources[name]
	return v, ok
}

func (f *fakeContent) GetResources(name string) ([]string, bool) {
	v, ok := f.multi[name]
	return v, ok
}

func TestModuleStartsUnresolvedWithNoWires(t *testing.T) {
	m := New(ID{BundleID: 1, ModuleID: 1}, Definition{}, newFakeContent(), nil)
	assert.Equal(t, StateUnresolved, m.State())
	assert.False(t, m.IsResolved())
	assert.Empty(t, m.Wires())
}

func TestModuleSetResolvedAndWires(t *testing.T) {
	importer := New(ID{BundleID: 1, ModuleID: 1}, Definition{}, newFakeContent(), nil)
	exporter := New(ID{BundleID: 2, ModuleID: 1}, Definition{}, newFakeContent(), nil)
	cap := Capability{Namespace: NamespacePackage, Properties: Properties{"package": "com.foo"}}
	w := NewPackageWire(importer, exporter, cap)

	importer.SetWires([]Wire{w})
	importer.SetResolved(true)

	assert.True(t, importer.IsResolved())
	assert.Len(t, importer.Wires(), 1)

	importer.SetResolved(false)
	assert.False(t, importer.IsResolved())
}

func TestModuleAppendWireDoesNotDisturbExisting(t *testing.T) {
	importer := New(ID{BundleID: 1, ModuleID: 1}, Definition{}, newFakeContent(), nil)
	exporterA := New(ID{BundleID: 2, ModuleID: 1}, Definition{}, newFakeContent(), nil)
	exporterB := New(ID{BundleID: 3, ModuleID: 1}, Definition{}, newFakeContent(), nil)
	capA := Capability{Namespace: NamespacePackage, Properties: Properties{"package": "com.a"}}
	capB := Capability{Namespace: NamespacePackage, Properties: Properties{"package": "com.b"}}

	wireA := NewPackageWire(importer, exporterA, capA)
	importer.SetWires([]Wire{wireA})

	wireB := NewPackageWire(importer, exporterB, capB)
	importer.AppendWire(wireB)

	wires := importer.Wires()
	assert.Len(t, wires, 2)
	assert.Same(t, wireA, wires[0])
	assert.Same(t, wireB, wires[1])
}

func TestModuleFindLibrary(t *testing.T) {
	def := Definition{Libraries: []Library{{Name: "native-foo", Path: "lib/libfoo.so"}}}
	m := New(ID{BundleID: 1, ModuleID: 1}, def, newFakeContent(), nil)

	path, ok := m.FindLibrary("native-foo")
	assert.True(t, ok)
	assert.Equal(t, "lib/libfoo.so", path)

	path, ok = m.FindLibrary("/native-foo")
	assert.True(t, ok)
	assert.Equal(t, "lib/libfoo.so", path)

	_, ok = m.FindLibrary("missing")
	assert.False(t, ok)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unresolved", StateUnresolved.String())
	assert.Equal(t, "resolved", StateResolved.String())
}
