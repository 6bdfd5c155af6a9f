package classspace

import (
	"github.com/openmodule/classspace/events"
	"github.com/openmodule/classspace/registry"
)

// Option is a functional option for RuntimeBuilder.
type Option func(*RuntimeBuilder) error

// RuntimeBuilder constructs a Runtime from a registry, a logger, and a set
// of optional ambient surfaces (HTTP diagnostics, periodic snapshot,
// CloudEvents bridge).
type RuntimeBuilder struct {
	registry     *registry.Registry
	logger       Logger
	httpAddr     string
	snapshotSpec string
	eventSource  string
	enableEvents bool
}

// NewRuntimeBuilder starts a builder for registry reg.
func NewRuntimeBuilder(reg *registry.Registry) *RuntimeBuilder {
	return &RuntimeBuilder{registry: reg}
}

// WithLogger sets the runtime's logger.
func WithLogger(logger Logger) Option {
	return func(b *RuntimeBuilder) error {
		b.logger = logger
		return nil
	}
}

// WithHTTPDiagnostics enables the chi-based diagnostics server on addr.
func WithHTTPDiagnostics(addr string) Option {
	return func(b *RuntimeBuilder) error {
		b.httpAddr = addr
		return nil
	}
}

// WithSnapshotSchedule enables the periodic registry-snapshot cron job using
// a standard 5-field cron expression.
func WithSnapshotSchedule(spec string) Option {
	return func(b *RuntimeBuilder) error {
		b.snapshotSpec = spec
		return nil
	}
}

// WithCloudEvents enables the CloudEvents listener bridge, tagging emitted
// events with source.
func WithCloudEvents(source string) Option {
	return func(b *RuntimeBuilder) error {
		b.enableEvents = true
		b.eventSource = source
		return nil
	}
}

// Build applies every option and returns the constructed Runtime. The
// registry must have been supplied to NewRuntimeBuilder; the logger is
// required.
func (b *RuntimeBuilder) Build(opts ...Option) (*Runtime, error) {
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	if b.registry == nil {
		return nil, ErrRegistryRequired
	}
	if b.logger == nil {
		return nil, ErrLoggerRequired
	}

	rt := &Runtime{
		Registry:     b.registry,
		Logger:       NewValueInjectionLoggerDecorator(b.logger, "component", "runtime"),
		httpAddr:     b.httpAddr,
		snapshotSpec: b.snapshotSpec,
	}

	if b.enableEvents {
		bridge := events.NewBridge(b.eventSource)
		b.registry.AddResolverListener(bridge)
		rt.events = bridge
	}

	return rt, nil
}
