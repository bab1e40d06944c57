package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Settings holds user configuration loaded from ~/.tempo/settings.json.
// Pointer fields distinguish "not configured" from explicit zero values.
type Settings struct {
	DBPath      string `json:"db_path,omitempty"`
	Debug       *bool  `json:"debug,omitempty"`
	MaxLogFiles *int   `json:"max_log_files,omitempty"`
}

// LoadSettings reads the settings file, returning empty settings when the
// file does not exist
func LoadSettings() (*Settings, error) {
	data, err := os.ReadFile(GetSettingsFilePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if settings.DBPath != "" {
		settings.DBPath = ExpandPath(settings.DBPath)
	}

	return &settings, nil
}
