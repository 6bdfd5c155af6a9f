// Package httpapi exposes read-only introspection endpoints over the module
// registry and search policy, built on go-chi/chi.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/openmodule/classspace/health"
	"github.com/openmodule/classspace/module"
	"github.com/openmodule/classspace/registry"
	"github.com/openmodule/classspace/searchpolicy"
)

// Logger is the structured logging surface NewRouter accepts. The router
// writes no log lines through it; a nil Logger is fine.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// NewRouter builds the diagnostics HTTP surface for reg.
func NewRouter(reg *registry.Registry, log Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	aggregator := health.NewAggregator(nil)
	_ = aggregator.RegisterCheck(context.Background(), health.NewRegistryChecker(reg, 0.5))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		status, err := aggregator.CheckAll(req.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		code := http.StatusOK
		if status.OverallStatus == health.StatusCritical {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, status)
	})

	r.Get("/modules", func(w http.ResponseWriter, req *http.Request) {
		modules := reg.Modules()
		out := make([]moduleSummary, 0, len(modules))
		for _, m := range modules {
			out = append(out, summarize(m))
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Get("/modules/{bundleID}/{moduleID}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := parseID(chi.URLParam(req, "bundleID"), chi.URLParam(req, "moduleID"))
		if !ok {
			http.Error(w, "invalid module id", http.StatusBadRequest)
			return
		}
		m, ok := reg.Module(id)
		if !ok {
			http.Error(w, "module not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, summarize(m))
	})

	r.Get("/modules/{bundleID}/{moduleID}/wires", func(w http.ResponseWriter, req *http.Request) {
		id, ok := parseID(chi.URLParam(req, "bundleID"), chi.URLParam(req, "moduleID"))
		if !ok {
			http.Error(w, "invalid module id", http.StatusBadRequest)
			return
		}
		m, ok := reg.Module(id)
		if !ok {
			http.Error(w, "module not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, summarizeWires(m))
	})

	r.Get("/modules/{bundleID}/{moduleID}/diagnostics/{name}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := parseID(chi.URLParam(req, "bundleID"), chi.URLParam(req, "moduleID"))
		if !ok {
			http.Error(w, "invalid module id", http.StatusBadRequest)
			return
		}
		m, ok := reg.Module(id)
		if !ok {
			http.Error(w, "module not found", http.StatusNotFound)
			return
		}
		diag := searchpolicy.DiagnoseClassLoad(m, chi.URLParam(req, "name"))
		writeJSON(w, http.StatusOK, diag)
	})

	return r
}

type moduleSummary struct {
	BundleID int64  `json:"bundle_id"`
	ModuleID int64  `json:"module_id"`
	State    string `json:"state"`
	Wires    int    `json:"wire_count"`
}

func summarize(m *module.Module) moduleSummary {
	return moduleSummary{
		BundleID: m.ID().BundleID,
		ModuleID: m.ID().ModuleID,
		State:    m.State().String(),
		Wires:    len(m.Wires()),
	}
}

type wireSummary struct {
	ExporterBundleID int64  `json:"exporter_bundle_id"`
	ExporterModuleID int64  `json:"exporter_module_id"`
	Package          string `json:"package,omitempty"`
}

func summarizeWires(m *module.Module) []wireSummary {
	wires := m.Wires()
	out := make([]wireSummary, 0, len(wires))
	for _, w := range wires {
		out = append(out, wireSummary{
			ExporterBundleID: w.Exporter().ID().BundleID,
			ExporterModuleID: w.Exporter().ID().ModuleID,
			Package:          w.PackageName(),
		})
	}
	return out
}

func parseID(bundleStr, moduleStr string) (module.ID, bool) {
	bundleID, err := strconv.ParseInt(bundleStr, 10, 64)
	if err != nil {
		return module.ID{}, false
	}
	moduleID, err := strconv.ParseInt(moduleStr, 10, 64)
	if err != nil {
		return module.ID{}, false
	}
	return module.ID{BundleID: bundleID, ModuleID: moduleID}, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
