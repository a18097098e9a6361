package config

import (
	"path/filepath"
)

// AppName is used in generating file system paths.
var AppName = "sekretar"

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/sekretar by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for data files, including the
// default SQLite database location.
// Returns ~/.local/share/sekretar by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/sekretar/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/sekretar/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
