package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/semnav/internal/config"
	"github.com/temirov/semnav/internal/utils"
)

func writeConfigFile(testingHandle *testing.T, path string, content string) {
	testingHandle.Helper()
	if makeDirError := os.MkdirAll(filepath.Dir(path), 0o755); makeDirError != nil {
		testingHandle.Fatalf("mkdir %s: %v", filepath.Dir(path), makeDirError)
	}
	if writeError := os.WriteFile(path, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("write %s: %v", path, writeError)
	}
}

func setHomeDirectory(testingHandle *testing.T, homeDirectory string) {
	testingHandle.Helper()
	testingHandle.Setenv("HOME", homeDirectory)
	testingHandle.Setenv("USERPROFILE", homeDirectory)
}

// TestLoadApplicationConfigurationMergesGlobalAndLocal verifies that local
// settings override global ones field by field.
func TestLoadApplicationConfigurationMergesGlobalAndLocal(testingHandle *testing.T) {
	homeDirectory := testingHandle.TempDir()
	workingDirectory := testingHandle.TempDir()
	setHomeDirectory(testingHandle, homeDirectory)

	writeConfigFile(testingHandle, filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName), `
scan:
  extensions:
    - .go
  exclude:
    - vendor
overview:
  clipboard: true
  tokens:
    model: gpt-4o
`)
	writeConfigFile(testingHandle, filepath.Join(workingDirectory, utils.ConfigFileName), `
scan:
  exclude:
    - generated
overview:
  tokens:
    enabled: true
`)

	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		testingHandle.Fatalf("LoadApplicationConfiguration error: %v", loadError)
	}

	if len(configuration.Scan.Extensions) != 1 || configuration.Scan.Extensions[0] != ".go" {
		testingHandle.Fatalf("expected global extensions preserved, got %v", configuration.Scan.Extensions)
	}
	if len(configuration.Scan.Exclude) != 1 || configuration.Scan.Exclude[0] != "generated" {
		testingHandle.Fatalf("expected local exclude override, got %v", configuration.Scan.Exclude)
	}
	if configuration.Overview.Clipboard == nil || !*configuration.Overview.Clipboard {
		testingHandle.Fatalf("expected global clipboard preserved, got %v", configuration.Overview.Clipboard)
	}
	if configuration.Overview.Tokens.Enabled == nil || !*configuration.Overview.Tokens.Enabled {
		testingHandle.Fatalf("expected local tokens.enabled override, got %v", configuration.Overview.Tokens.Enabled)
	}
	if configuration.Overview.Tokens.Model != "gpt-4o" {
		testingHandle.Fatalf("expected global model preserved, got %q", configuration.Overview.Tokens.Model)
	}
}

// TestLoadApplicationConfigurationExplicitPathWins verifies the explicit file
// takes the local layer's place.
func TestLoadApplicationConfigurationExplicitPathWins(testingHandle *testing.T) {
	homeDirectory := testingHandle.TempDir()
	workingDirectory := testingHandle.TempDir()
	setHomeDirectory(testingHandle, homeDirectory)

	writeConfigFile(testingHandle, filepath.Join(workingDirectory, utils.ConfigFileName), `
scan:
  exclude:
    - local_only
`)
	explicitPath := filepath.Join(workingDirectory, "explicit.yaml")
	writeConfigFile(testingHandle, explicitPath, `
scan:
  exclude:
    - explicit_only
  content_prefix_limit: 500
`)

	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: explicitPath,
	})
	if loadError != nil {
		testingHandle.Fatalf("LoadApplicationConfiguration error: %v", loadError)
	}

	if len(configuration.Scan.Exclude) != 1 || configuration.Scan.Exclude[0] != "explicit_only" {
		testingHandle.Fatalf("expected explicit exclude, got %v", configuration.Scan.Exclude)
	}
	if configuration.Scan.ContentPrefixLimit == nil || *configuration.Scan.ContentPrefixLimit != 500 {
		testingHandle.Fatalf("expected content prefix limit 500, got %v", configuration.Scan.ContentPrefixLimit)
	}
}

// TestLoadApplicationConfigurationMissingFiles verifies that absent files
// yield an empty configuration without error.
func TestLoadApplicationConfigurationMissingFiles(testingHandle *testing.T) {
	setHomeDirectory(testingHandle, testingHandle.TempDir())

	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: testingHandle.TempDir()})
	if loadError != nil {
		testingHandle.Fatalf("LoadApplicationConfiguration error: %v", loadError)
	}
	if len(configuration.Scan.Extensions) != 0 || len(configuration.Scan.Exclude) != 0 {
		testingHandle.Fatalf("expected empty scan configuration, got %+v", configuration.Scan)
	}
	if configuration.Overview.Clipboard != nil || configuration.Overview.Tokens.Enabled != nil {
		testingHandle.Fatalf("expected unset overview configuration, got %+v", configuration.Overview)
	}
}

// TestLoadApplicationConfigurationDeduplicatesPatterns verifies duplicate
// removal across the merged lists.
func TestLoadApplicationConfigurationDeduplicatesPatterns(testingHandle *testing.T) {
	homeDirectory := testingHandle.TempDir()
	workingDirectory := testingHandle.TempDir()
	setHomeDirectory(testingHandle, homeDirectory)

	writeConfigFile(testingHandle, filepath.Join(workingDirectory, utils.ConfigFileName), `
scan:
  extensions:
    - .go
    - .go
    - .rs
  exclude:
    - vendor
    - vendor
`)

	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		testingHandle.Fatalf("LoadApplicationConfiguration error: %v", loadError)
	}
	if len(configuration.Scan.Extensions) != 2 {
		testingHandle.Fatalf("expected deduplicated extensions, got %v", configuration.Scan.Extensions)
	}
	if len(configuration.Scan.Exclude) != 1 {
		testingHandle.Fatalf("expected deduplicated exclude, got %v", configuration.Scan.Exclude)
	}
}

// TestMergeDoesNotShareOptionalPointers verifies that merged configurations
// clone pointer fields.
func TestMergeDoesNotShareOptionalPointers(testingHandle *testing.T) {
	overrideEnabled := true
	override := config.ApplicationConfiguration{}
	override.Overview.Clipboard = &overrideEnabled

	merged := config.ApplicationConfiguration{}.Merge(override)

	overrideEnabled = false
	if merged.Overview.Clipboard == nil || !*merged.Overview.Clipboard {
		testingHandle.Fatalf("merged configuration shares pointer with override")
	}
}
