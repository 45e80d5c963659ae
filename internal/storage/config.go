package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds application configuration.
type Config struct {
	AutoFetchTitles bool `json:"autoFetchTitles"`
	ExpandNewGroups bool `json:"expandNewGroups"`
}

// configFile mirrors Config with optional fields so that missing keys can
// fall back to defaults instead of false.
type configFile struct {
	AutoFetchTitles *bool `json:"autoFetchTitles"`
	ExpandNewGroups *bool `json:"expandNewGroups"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		AutoFetchTitles: true,
		ExpandNewGroups: true,
	}
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Create the config file with defaults
			if saveErr := SaveConfig(path, &config); saveErr != nil {
				// Non-fatal: return defaults even if save fails
				return &config, nil
			}
			return &config, nil
		}
		return nil, err
	}

	var file configFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if file.AutoFetchTitles != nil {
		config.AutoFetchTitles = *file.AutoFetchTitles
	}
	if file.ExpandNewGroups != nil {
		config.ExpandNewGroups = *file.ExpandNewGroups
	}

	return &config, nil
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: ~/.config/vt/config.json
func DefaultConfigFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "vt", "config.json"), nil
}
