package feeders

import (
	"os"
	"testing"
)

func TestTomlFeeder_Feed(t *testing.T) {
	tempFile, err := os.CreateTemp("", "boot-*.toml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	tomlContent := `
boot_delegation = ["java.", "sun."]
system_packages = ["org.osgi.framework"]
max_candidate_attempts = 5000
`
	if _, err := tempFile.Write([]byte(tomlContent)); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	tempFile.Close()

	type Config struct {
		BootDelegation       []string `toml:"boot_delegation"`
		SystemPackages       []string `toml:"system_packages"`
		MaxCandidateAttempts int      `toml:"max_candidate_attempts"`
	}

	var config Config
	feeder := NewTomlFeeder(tempFile.Name())
	err = feeder.Feed(&config)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(config.BootDelegation) != 2 || config.BootDelegation[0] != "java." {
		t.Errorf("Expected BootDelegation to start with 'java.', got %v", config.BootDelegation)
	}
	if len(config.SystemPackages) != 1 || config.SystemPackages[0] != "org.osgi.framework" {
		t.Errorf("Expected SystemPackages to contain org.osgi.framework, got %v", config.SystemPackages)
	}
	if config.MaxCandidateAttempts != 5000 {
		t.Errorf("Expected MaxCandidateAttempts to be 5000, got %d", config.MaxCandidateAttempts)
	}
}

func TestTomlFeeder_FeedKeyExtractsSingleTable(t *testing.T) {
	tempFile, err := os.CreateTemp("", "boot-*.toml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	tomlContent := `
[resolver]
max_candidate_attempts = 250
`
	if _, err := tempFile.Write([]byte(tomlContent)); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	tempFile.Close()

	type ResolverSection struct {
		MaxCandidateAttempts int `toml:"max_candidate_attempts"`
	}

	var section ResolverSection
	feeder := NewTomlFeeder(tempFile.Name())
	if err := feeder.FeedKey("resolver", &section); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if section.MaxCandidateAttempts != 250 {
		t.Errorf("Expected MaxCandidateAttempts to be 250, got %d", section.MaxCandidateAttempts)
	}

	var missing ResolverSection
	if err := feeder.FeedKey("does_not_exist", &missing); err != nil {
		t.Fatalf("Expected missing key to be a no-op, got %v", err)
	}
}
