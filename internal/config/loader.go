package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"stubctl/pkg/logging"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/stubctl"
	projectConfigDir = ".stubctl"
	configFileName   = "config.yaml"
)

// LoadConfig loads the stubctl configuration by layering default, user, and
// project settings.
func LoadConfig() (StubctlConfig, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional
		logging.Warn("Config", "Could not determine user config path: %v", err)
	} else if config, err = mergeFromFile(config, userConfigPath); err != nil {
		return StubctlConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine project config path: %v", err)
	} else if config, err = mergeFromFile(config, projectConfigPath); err != nil {
		return StubctlConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
	}

	if err := config.Validate(); err != nil {
		return StubctlConfig{}, err
	}
	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// mergeFromFile merges the file at path onto base. A missing file leaves
// base unchanged.
func mergeFromFile(base StubctlConfig, path string) (StubctlConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return base, err
	}
	logging.Debug("Config", "Merged configuration from %s", path)
	return mergeConfigs(base, overlay), nil
}

// loadConfigFromFile loads a StubctlConfig from a YAML file. Environment
// variables in declaration paths are expanded.
func loadConfigFromFile(filePath string) (StubctlConfig, error) {
	var config StubctlConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return StubctlConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return StubctlConfig{}, err
	}
	for i, p := range config.DeclarationPaths {
		config.DeclarationPaths[i] = os.ExpandEnv(p)
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Scalars set in
// the overlay win; declaration paths accumulate without duplicates.
func mergeConfigs(base, overlay StubctlConfig) StubctlConfig {
	merged := base

	if overlay.LogLevel != "" {
		merged.LogLevel = overlay.LogLevel
	}
	if overlay.Output != "" {
		merged.Output = overlay.Output
	}
	if overlay.Color != nil {
		color := *overlay.Color
		merged.Color = &color
	}

	merged.DeclarationPaths = slices.Clone(base.DeclarationPaths)
	for _, p := range overlay.DeclarationPaths {
		if !slices.Contains(merged.DeclarationPaths, p) {
			merged.DeclarationPaths = append(merged.DeclarationPaths, p)
		}
	}

	if overlay.Catalog.ShowBindings {
		merged.Catalog.ShowBindings = true
	}
	if overlay.Catalog.MaxSignatureWidth != 0 {
		merged.Catalog.MaxSignatureWidth = overlay.Catalog.MaxSignatureWidth
	}

	return merged
}

// Validate checks the values LoadConfig cannot check while merging.
func (c StubctlConfig) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid logLevel: %w", err)
	}
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid output %q: want %s, %s or %s", c.Output, OutputTable, OutputJSON, OutputYAML)
	}
	if c.Catalog.MaxSignatureWidth < 0 {
		return fmt.Errorf("invalid catalog.maxSignatureWidth %d: must not be negative", c.Catalog.MaxSignatureWidth)
	}
	return nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
