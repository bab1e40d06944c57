package config

import (
	"os"
	"path/filepath"
	"strings"
)

// TempoHome returns $TEMPO_HOME or ~/.tempo
func TempoHome() string {
	if home := os.Getenv("TEMPO_HOME"); home != "" {
		return ExpandPath(home)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tempo"
	}
	return filepath.Join(homeDir, ".tempo")
}

// GetDBPath returns the SQLite database path inside the tempo home
func GetDBPath() string {
	return filepath.Join(TempoHome(), "tempo.db")
}

// GetSettingsFilePath returns the path to the settings file
func GetSettingsFilePath() string {
	return filepath.Join(TempoHome(), "settings.json")
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return homeDir
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
