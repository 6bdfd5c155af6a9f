package feeders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LayeredConfigFeeder supports layered configuration loading with base configs and environment-specific overrides
type LayeredConfigFeeder struct {
	BaseDir      string // Directory containing base/ and environments/ subdirectories
	Environment  string // Environment name (e.g., "prod", "staging", "dev")
	verboseDebug bool
	logger       interface{ Debug(msg string, args ...any) }
	fieldTracker FieldTracker
}

// NewLayeredConfigFeeder creates a new base configuration feeder
// baseDir should contain base/ and environments/ subdirectories
// environment specifies which environment overrides to apply (e.g., "prod", "staging", "dev")
func NewLayeredConfigFeeder(baseDir, environment string) *LayeredConfigFeeder {
	return &LayeredConfigFeeder{
		BaseDir:      baseDir,
		Environment:  environment,
		verboseDebug: false,
		logger:       nil,
		fieldTracker: nil,
	}
}

// SetVerboseDebug enables or disables verbose debug logging
func (b *LayeredConfigFeeder) SetVerboseDebug(enabled bool, logger interface{ Debug(msg string, args ...any) }) {
	b.verboseDebug = enabled
	b.logger = logger
	if enabled && logger != nil {
		b.logger.Debug("Verbose LayeredConfig feeder debugging enabled", "baseDir", b.BaseDir, "environment", b.Environment)
	}
}

// SetFieldTracker sets the field tracker for recording field populations
func (b *LayeredConfigFeeder) SetFieldTracker(tracker FieldTracker) {
	b.fieldTracker = tracker
}

// Feed loads and merges base configuration with environment-specific overrides
func (b *LayeredConfigFeeder) Feed(structure interface{}) error {
	if b.verboseDebug && b.logger != nil {
		b.logger.Debug("LayeredConfigFeeder: Starting feed process",
			"baseDir", b.BaseDir,
			"environment", b.Environment,
			"structureType", reflect.TypeOf(structure))
	}

	// Load base configuration first
	baseConfig, err := b.loadBaseConfig()
	if err != nil {
		if b.verboseDebug && b.logger != nil {
			b.logger.Debug("LayeredConfigFeeder: Failed to load base config", "error", err)
		}
		return fmt.Errorf("failed to load base config: %w", err)
	}

	// Load environment overrides
	envConfig, err := b.loadEnvironmentConfig()
	if err != nil {
		if b.verboseDebug && b.logger != nil {
			b.logger.Debug("LayeredConfigFeeder: Failed to load environment config", "error", err)
		}
		return fmt.Errorf("failed to load environment config: %w", err)
	}

	// Merge configurations (environment overrides base)
	mergedConfig := b.mergeConfigs(baseConfig, envConfig)

	// Apply merged configuration to the target structure
	err = b.applyConfigToStruct(mergedConfig, structure)
	if err != nil {
		if b.verboseDebug && b.logger != nil {
			b.logger.Debug("LayeredConfigFeeder: Failed to apply config to struct", "error", err)
		}
		return fmt.Errorf("failed to apply merged config: %w", err)
	}

	if b.verboseDebug && b.logger != nil {
		b.logger.Debug("LayeredConfigFeeder: Feed completed successfully")
	}

	return nil
}

// FeedBundle loads and merges configurations for a specific key
func (b *LayeredConfigFeeder) FeedBundle(key string, target interface{}) error {
	if b.verboseDebug && b.logger != nil {
		b.logger.Debug("LayeredConfigFeeder: Starting FeedBundle process",
			"key", key,
			"targetType", reflect.TypeOf(target))
	}

	// Load base configuration for the specific key
	baseConfig, err := b.loadBaseBundleConfig(key)
	if err != nil {
		if b.verboseDebug && b.logger != nil {
			b.logger.Debug("LayeredConfigFeeder: Failed to load base config for key", "key", key, "error", err)
		}
		return fmt.Errorf("failed to load base config for key %s: %w", key, err)
	}

	// Load environment overrides for the specific key
	envConfig, err := b.loadEnvironmentBundleConfig(key)
	if err != nil {
		if b.verboseDebug && b.logger != nil {
			b.logger.Debug("LayeredConfigFeeder: Failed to load environment config for key", "key", key, "error", err)
		}
		return fmt.Errorf("failed to load environment config for key %s: %w", key, err)
	}

	// Merge configurations (environment overrides base)
	mergedConfig := b.mergeConfigs(baseConfig, envConfig)

	// Apply merged configuration to the target structure
	err = b.applyConfigToStruct(mergedConfig, target)
	if err != nil {
		if b.verboseDebug && b.logger != nil {
			b.logger.Debug("LayeredConfigFeeder: Failed to apply config for key", "key", key, "error", err)
		}
		return fmt.Errorf("failed to apply merged config for key %s: %w", key, err)
	}

	if b.verboseDebug && b.logger != nil {
		b.logger.Debug("LayeredConfigFeeder: FeedBundle completed successfully", "key", key)
	}

	return nil
}

// loadBaseConfig loads the base configuration file
func (b *LayeredConfigFeeder) loadBaseConfig() (map[string]interface{}, error) {
	baseConfigPath := b.findConfigFile(filepath.Join(b.BaseDir, "base"), "default")
	if baseConfigPath == "" {
		if b.verboseDebug && b.logger != nil {
			b.logger.Debug("LayeredConfigFeeder: No base config file found", "baseDir", filepath.Join(b.BaseDir, "base"))
		}
		return make(map[string]interface{}), nil // Return empty config if no base file exists
	}

	return b.loadConfigFile(baseConfigPath)
}

// loadEnvironmentConfig loads the environment-specific overrides
func (b *LayeredConfigFeeder) loadEnvironmentConfig() (map[string]interface{}, error) {
	envConfigPath := b.findConfigFile(filepath.Join(b.BaseDir, "environments", b.Environment), "overrides")
	if envConfigPath == "" {
		if b.verboseDebug && b.logger != nil {
			b.logger.Debug("LayeredConfigFeeder: No environment config file found",
				"envDir", filepath.Join(b.BaseDir, "environments", b.Environment))
		}
		return make(map[string]interface{}), nil // Return empty config if no env file exists
	}

	return b.loadConfigFile(envConfigPath)
}

// loadBaseBundleConfig loads base config for a specific key (used for per-bundle overrides)
func (b *LayeredConfigFeeder) loadBaseBundleConfig(key string) (map[string]interface{}, error) {
	baseConfigPath := b.findConfigFile(filepath.Join(b.BaseDir, "base", "bundles"), key)
	if baseConfigPath == "" {
		if b.verboseDebug && b.logger != nil {
			b.logger.Debug("LayeredConfigFeeder: No base bundle config found",
				"key", key,
				"baseDir", filepath.Join(b.BaseDir, "base", "bundles"))
		}
		return make(map[string]interface{}), nil
	}

	return b.loadConfigFile(baseConfigPath)
}

// loadEnvironmentBundleConfig loads environment config for a specific key (used for per-bundle overrides)
func (b *LayeredConfigFeeder) loadEnvironmentBundleConfig(key string) (map[string]interface{}, error) {
	envConfigPath := b.findConfigFile(filepath.Join(b.BaseDir, "environments", b.Environment, "bundles"), key)
	if envConfigPath == "" {
		if b.verboseDebug && b.logger != nil {
			b.logger.Debug("LayeredConfigFeeder: No environment bundle config found",
				"key", key,
				"envDir", filepath.Join(b.BaseDir, "environments", b.Environment, "bundles"))
		}
		return make(map[string]interface{}), nil
	}

	return b.loadConfigFile(envConfigPath)
}

// findConfigFile searches for a config file with the given name and supported extensions.
// Extensions are tried in order: .yaml, .yml, .json, .toml - the first found file is returned.
// This order affects configuration precedence when multiple formats exist for the same config.
func (b *LayeredConfigFeeder) findConfigFile(dir, name string) string {
	extensions := []string{".yaml", ".yml", ".json", ".toml"}

	for _, ext := range extensions {
		configPath := filepath.Join(dir, name+ext)
		if _, err := os.Stat(configPath); err == nil {
			if b.verboseDebug && b.logger != nil {
				b.logger.Debug("LayeredConfigFeeder: Found config file", "path", configPath)
			}
			return configPath
		}
	}

	return ""
}

// loadConfigFile loads a configuration file into a map, automatically detecting the format
// based on the file extension (.yaml, .yml, .json, .toml)
func (b *LayeredConfigFeeder) loadConfigFile(filePath string) (map[string]interface{}, error) {
	if b.verboseDebug && b.logger != nil {
		b.logger.Debug("LayeredConfigFeeder: Loading config file", "path", filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	var config map[string]interface{}
	ext := filepath.Ext(filePath)

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML file %s: %w", filePath, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON file %s: %w", filePath, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal TOML file %s: %w", filePath, err)
		}
	default:
		// Default to YAML for backward compatibility
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file %s (defaulted to YAML): %w", filePath, err)
		}
	}

	if b.verboseDebug && b.logger != nil {
		b.logger.Debug("LayeredConfigFeeder: Successfully loaded config file", "path", filePath, "format", ext, "keys", len(config))
	}

	return config, nil
}

// mergeConfigs merges environment config over base config (deep merge)
func (b *LayeredConfigFeeder) mergeConfigs(base, override map[string]interface{}) map[string]interface{} {
	return b.mergeConfigsAt("", base, override)
}

// mergeConfigsAt is mergeConfigs for maps nested under prefix; each tracked
// override's FieldPath is its dotted path from the top-level config.
func (b *LayeredConfigFeeder) mergeConfigsAt(prefix string, base, override map[string]interface{}) map[string]interface{} {
	if b.verboseDebug && b.logger != nil {
		b.logger.Debug("LayeredConfigFeeder: Merging configurations",
			"baseKeys", len(base),
			"overrideKeys", len(override))
	}

	merged := make(map[string]interface{})

	// Copy all base config values
	for key, value := range base {
		merged[key] = value
	}

	// Apply overrides
	for key, overrideValue := range override {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if baseValue, exists := base[key]; exists {
			// If both values are maps, merge them recursively
			if baseMap, baseIsMap := baseValue.(map[string]interface{}); baseIsMap {
				if overrideMap, overrideIsMap := overrideValue.(map[string]interface{}); overrideIsMap {
					merged[key] = b.mergeConfigsAt(path, baseMap, overrideMap)
					continue
				}
			}
		}
		// Otherwise, override completely replaces base value
		merged[key] = overrideValue
		if b.fieldTracker != nil {
			b.fieldTracker.RecordFieldPopulation(FieldPopulation{
				FieldPath:  path,
				FieldName:  key,
				FeederType: "LayeredConfigFeeder",
				SourceType: "environment-override",
				SourceKey:  key,
				Value:      overrideValue,
				FoundKey:   key,
			})
		}
	}

	if b.verboseDebug && b.logger != nil {
		b.logger.Debug("LayeredConfigFeeder: Configuration merge completed", "mergedKeys", len(merged))
	}

	return merged
}

// applyConfigToStruct applies the merged configuration to the target structure
func (b *LayeredConfigFeeder) applyConfigToStruct(config map[string]interface{}, target interface{}) error {
	if b.verboseDebug && b.logger != nil {
		b.logger.Debug("LayeredConfigFeeder: Applying config to struct",
			"targetType", reflect.TypeOf(target),
			"configKeys", len(config))
	}

	// Convert the merged config back to YAML and then unmarshal into target struct
	// This ensures proper type conversion and structure validation
	yamlData, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal merged config: %w", err)
	}

	if err := yaml.Unmarshal(yamlData, target); err != nil {
		return fmt.Errorf("failed to unmarshal config to target struct: %w", err)
	}

	if b.verboseDebug && b.logger != nil {
		b.logger.Debug("LayeredConfigFeeder: Successfully applied config to struct")
	}

	return nil
}

// IsLayeredConfigStructure checks if the given directory has the expected base config structure
func IsLayeredConfigStructure(configDir string) bool {
	// Check for base/ directory
	baseDir := filepath.Join(configDir, "base")
	if stat, err := os.Stat(baseDir); err != nil || !stat.IsDir() {
		return false
	}

	// Check for environments/ directory
	envDir := filepath.Join(configDir, "environments")
	if stat, err := os.Stat(envDir); err != nil || !stat.IsDir() {
		return false
	}

	return true
}

// GetAvailableEnvironments returns the list of available environments in the config directory
// in alphabetical order for consistent, deterministic behavior
func GetAvailableEnvironments(configDir string) []string {
	envDir := filepath.Join(configDir, "environments")
	entries, err := os.ReadDir(envDir)
	if err != nil {
		return nil
	}

	var environments []string
	for _, entry := range entries {
		if entry.IsDir() {
			environments = append(environments, entry.Name())
		}
	}

	// Sort alphabetically for deterministic behavior
	sort.Strings(environments)
	return environments
}
