// Package events bridges module registry lifecycle notifications onto
// CloudEvents, generalized from a single in-process Subject to a
// registry.ResolverListener.
package events

import (
	"context"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"

	"github.com/openmodule/classspace/module"
)

// Event type constants, following CloudEvents reverse-domain convention.
const (
	EventTypeModuleAdded      = "dev.classspace.module.added"
	EventTypeModuleRemoved    = "dev.classspace.module.removed"
	EventTypeModuleResolved   = "dev.classspace.module.resolved"
	EventTypeModuleUnresolved = "dev.classspace.module.unresolved"
)

// Observer receives CloudEvents emitted by a Bridge.
type Observer interface {
	OnEvent(ctx context.Context, event cloudevents.Event) error
	ObserverID() string
}

// Bridge implements registry.ResolverListener and republishes every
// notification as a CloudEvent to its own registered observers, using
// copy-on-write registration for the observer slice.
type Bridge struct {
	source string

	mu        sync.RWMutex
	observers []Observer
}

// NewBridge builds a Bridge that stamps every emitted event's source
// attribute with source (typically the runtime's own identity).
func NewBridge(source string) *Bridge {
	return &Bridge{source: source}
}

// RegisterObserver adds an observer. It is safe for concurrent use.
func (b *Bridge) RegisterObserver(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(append([]Observer(nil), b.observers...), o)
}

// UnregisterObserver removes an observer, if present.
func (b *Bridge) UnregisterObserver(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Observer, 0, len(b.observers))
	for _, existing := range b.observers {
		if existing.ObserverID() != o.ObserverID() {
			out = append(out, existing)
		}
	}
	b.observers = out
}

func (b *Bridge) snapshot() []Observer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Observer(nil), b.observers...)
}

func (b *Bridge) emit(eventType string, m *module.Module) {
	event := cloudevents.NewEvent()
	event.SetID(newEventID())
	event.SetSource(b.source)
	event.SetType(eventType)
	event.SetTime(time.Now())
	_ = event.SetData(cloudevents.ApplicationJSON, map[string]any{
		"bundle_id": m.ID().BundleID,
		"module_id": m.ID().ModuleID,
		"state":     m.State().String(),
	})

	ctx := context.Background()
	for _, o := range b.snapshot() {
		_ = o.OnEvent(ctx, event)
	}
}

func newEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// ModuleAdded implements registry.ResolverListener.
func (b *Bridge) ModuleAdded(m *module.Module) { b.emit(EventTypeModuleAdded, m) }

// ModuleRemoved implements registry.ResolverListener.
func (b *Bridge) ModuleRemoved(m *module.Module) { b.emit(EventTypeModuleRemoved, m) }

// ModuleResolved implements registry.ResolverListener.
func (b *Bridge) ModuleResolved(m *module.Module) { b.emit(EventTypeModuleResolved, m) }

// ModuleUnresolved implements registry.ResolverListener.
func (b *Bridge) ModuleUnresolved(m *module.Module) { b.emit(EventTypeModuleUnresolved, m) }
