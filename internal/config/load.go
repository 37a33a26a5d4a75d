package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags, then
// validates the result.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "levelkit")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "levelkit")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "levelkit")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "levelkit")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
// A file that lists light setups replaces the built-in presets.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Parse(cfg, data)
}

// Parse merges YAML data into cfg.
func Parse(cfg *Config, data []byte) error {
	defaults := cfg.Lights.Setups
	cfg.Lights.Setups = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg.Lights.Setups = defaults
		return err
	}
	if cfg.Lights.Setups == nil {
		cfg.Lights.Setups = defaults
	}
	return nil
}

// LoadFile loads defaults merged with the file at path, without CLI flags.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
