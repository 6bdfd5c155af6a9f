package feeders

import (
	"fmt"
	"github.com/BurntSushi/toml"
	"github.com/golobby/config/v3/pkg/feeder"
)

// TomlFeeder reads a TOML boot config file, e.g. boot_delegation and
// system_packages sections.
type TomlFeeder struct {
	feeder.Toml
}

func NewTomlFeeder(filePath string) TomlFeeder {
	return TomlFeeder{feeder.Toml{Path: filePath}}
}

// FeedKey reads the file and applies a single top-level TOML key to target,
// e.g. just the "resolver" table out of a combined boot config file.
func (t TomlFeeder) FeedKey(key string, target interface{}) error {
	// Create a temporary map to hold all toml data
	var allData map[string]interface{}

	// Use the embedded Toml feeder to read the file
	if err := t.Feed(&allData); err != nil {
		return fmt.Errorf("failed to read toml: %w", err)
	}

	// Look for the specific key
	value, exists := allData[key]
	if !exists {
		return nil
	}

	// Remarshal and unmarshal to handle type conversions
	valueBytes, err := toml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err = toml.Unmarshal(valueBytes, target); err != nil {
		return fmt.Errorf("failed to unmarshal value to target: %w", err)
	}

	return nil
}
