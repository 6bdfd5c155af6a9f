// Package config loads runtime configuration from TOML/YAML files with
// optional hot-reload, using feeders layered onto a single target struct
// instead of many named sections.
package config

import "context"

// ConfigLoader loads and optionally watches configuration for a single
// target struct.
type ConfigLoader interface {
	// Load reads the configured source(s) into target once.
	Load(target interface{}) error

	// Watch starts watching the configured source for changes, reloading
	// it into target and then invoking onChange each time it changes. Watch
	// returns immediately; cancel ctx to stop watching.
	Watch(ctx context.Context, target interface{}, onChange func()) error
}

// ReloadCallback is invoked with the path that changed.
type ReloadCallback func(path string)
