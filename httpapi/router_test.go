package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

func newRegWithModule(t *testing.T) (*registry.Registry, *module.Module) {
	t.Helper()
	reg := registry.New(nil)
	m := module.New(module.ID{BundleID: 1, ModuleID: 1}, module.Definition{}, fakeContent{}, nil)
	reg.AddModule(m)
	return reg, m
}

func TestHealthzReturnsOKWhenRegistryHealthy(t *testing.T) {
	reg, m := newRegWithModule(t)
	require.NoError(t, reg.Resolve(m))
	router := NewRouter(reg, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListModulesReturnsSummaries(t *testing.T) {
	reg, m := newRegWithModule(t)
	router := NewRouter(reg, nil)

	req := httptest.NewRequest(http.MethodGet, "/modules", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out []moduleSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, m.ID().BundleID, out[0].BundleID)
	assert.Equal(t, "unresolved", out[0].State)
}

func TestGetModuleByIDNotFound(t *testing.T) {
	reg, _ := newRegWithModule(t)
	router := NewRouter(reg, nil)

	req := httptest.NewRequest(http.MethodGet, "/modules/99/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetModuleByIDInvalidIDReturnsBadRequest(t *testing.T) {
	reg, _ := newRegWithModule(t)
	router := NewRouter(reg, nil)

	req := httptest.NewRequest(http.MethodGet, "/modules/notanumber/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetModuleWiresReturnsEmptyForUnresolvedModule(t *testing.T) {
	reg, _ := newRegWithModule(t)
	router := NewRouter(reg, nil)

	req := httptest.NewRequest(http.MethodGet, "/modules/1/1/wires", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out []wireSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Empty(t, out)
}

func TestDiagnosticsEndpointReportsUnresolvedReason(t *testing.T) {
	reg, _ := newRegWithModule(t)
	router := NewRouter(reg, nil)

	req := httptest.NewRequest(http.MethodGet, "/modules/1/1/diagnostics/com.foo.Bar", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["reason"], "unresolved")
}
