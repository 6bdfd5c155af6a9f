package classspace

import (
	"fmt"

	"github.com/openmodule/classspace/config"
	"github.com/openmodule/classspace/feeders"
)

// BootConfig is the runtime's own configuration: boot delegation package
// prefixes, host system packages, and the resolver's safety limits. It is
// loaded via TOML/YAML/env feeders layered onto a struct, with field
// defaults and optional hot-reload.
type BootConfig struct {
	// BootDelegation lists package prefixes that should always resolve to
	// the host's own classpath rather than through the module graph.
	BootDelegation []string `toml:"boot_delegation" yaml:"boot_delegation" env:"CLASSSPACE_BOOT_DELEGATION"`

	// SystemPackages lists packages the host itself provides. It is
	// informational: neither the resolver nor the search policy reads it.
	SystemPackages []string `toml:"system_packages" yaml:"system_packages" env:"CLASSSPACE_SYSTEM_PACKAGES"`

	// MaxCandidateAttempts is loaded and defaulted to 10000, but the
	// resolver does not read it: its odometer search has no attempt limit
	// and runs until it finds a consistent configuration or exhausts them.
	MaxCandidateAttempts int `toml:"max_candidate_attempts" yaml:"max_candidate_attempts" env:"CLASSSPACE_MAX_CANDIDATE_ATTEMPTS" default:"10000"`
}

// LoadBootConfig loads a BootConfig from path, dispatching to the TOML or
// YAML loader by file extension, then applies any CLASSSPACE_* environment
// overrides on top.
func LoadBootConfig(path string) (*BootConfig, error) {
	cfg := &BootConfig{}
	loader, err := config.NewFileLoader(path)
	if err != nil {
		return nil, fmt.Errorf("classspace: load boot config: %w", err)
	}
	if err := loader.Load(cfg); err != nil {
		return nil, fmt.Errorf("classspace: load boot config: %w", err)
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("classspace: apply env overrides to boot config: %w", err)
	}
	if cfg.MaxCandidateAttempts == 0 {
		cfg.MaxCandidateAttempts = 10000
	}
	return cfg, nil
}

// LoadLayeredBootConfig loads a BootConfig by merging baseDir/base/default.*
// with baseDir/environments/<environment>/overrides.*, the same layering
// used for host operator config, then applies CLASSSPACE_* env overrides.
func LoadLayeredBootConfig(baseDir, environment string) (*BootConfig, error) {
	cfg := &BootConfig{}
	if err := feeders.NewLayeredConfigFeeder(baseDir, environment).Feed(cfg); err != nil {
		return nil, fmt.Errorf("classspace: load layered boot config: %w", err)
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("classspace: apply env overrides to boot config: %w", err)
	}
	if cfg.MaxCandidateAttempts == 0 {
		cfg.MaxCandidateAttempts = 10000
	}
	return cfg, nil
}

// applyEnvOverrides layers CLASSSPACE_* environment variables onto cfg,
// taking precedence over whatever the file feeder populated.
func applyEnvOverrides(cfg *BootConfig) error {
	return feeders.NewEnvFeeder().Feed(cfg)
}
