package classspace

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/openmodule/classspace/events"
	"github.com/openmodule/classspace/httpapi"
	"github.com/openmodule/classspace/registry"
)

// Runtime wires together the module registry, its HTTP diagnostics surface,
// its CloudEvents listener bridge, and a periodic registry-snapshot job. It
// is the top-level object a program using this repository constructs and
// starts.
type Runtime struct {
	Registry *registry.Registry
	Logger   Logger

	httpAddr     string
	httpServer   *http.Server
	cron         *cron.Cron
	snapshotSpec string
	events       *events.Bridge

	started bool
}

// Start launches the HTTP diagnostics server (if configured) and the
// periodic snapshot job (if configured). A second call returns
// ErrAlreadyStarted; Start is not safe for concurrent use.
func (r *Runtime) Start(ctx context.Context) error {
	if r.started {
		return ErrAlreadyStarted
	}
	r.started = true

	if r.httpAddr != "" {
		r.httpServer = &http.Server{
			Addr:    r.httpAddr,
			Handler: httpapi.NewRouter(r.Registry, NewPrefixLoggerDecorator(r.Logger, "[http]")),
		}
		go func() {
			if err := r.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				r.Logger.Error("http diagnostics server stopped", "error", err)
			}
		}()
		r.Logger.Info("http diagnostics server listening", "addr", r.httpAddr)
	}

	if r.snapshotSpec != "" {
		r.cron = cron.New()
		if _, err := r.cron.AddFunc(r.snapshotSpec, r.logSnapshot); err != nil {
			return fmt.Errorf("classspace: schedule snapshot job: %w", err)
		}
		r.cron.Start()
		r.Logger.Info("registry snapshot job scheduled", "spec", r.snapshotSpec)
	}

	return nil
}

// Stop shuts down the HTTP server and cron job gracefully.
func (r *Runtime) Stop(ctx context.Context) error {
	if !r.started {
		return ErrNotStarted
	}
	if r.cron != nil {
		cronCtx := r.cron.Stop()
		<-cronCtx.Done()
	}
	if r.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := r.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("classspace: shutdown http server: %w", err)
		}
	}
	r.started = false
	return nil
}

// logSnapshot is the cron job body: a one-line structured-logging summary
// of registry state.
func (r *Runtime) logSnapshot() {
	modules := r.Registry.Modules()
	resolved, unresolved := 0, 0
	for _, m := range modules {
		if m.IsResolved() {
			resolved++
		} else {
			unresolved++
		}
	}
	r.Logger.Info("registry snapshot", "modules", len(modules), "resolved", resolved, "unresolved", unresolved)
}
