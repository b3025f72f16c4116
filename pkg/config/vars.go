package config

import (
	"path/filepath"
)

var (
	// MinVersionSFGA determines the oldest SFGA version gnmatch can read.
	// Versions higher than minimal are all supported.
	MinVersionSFGA = "v0.3.30"
	// AppName is used in generating file system paths.
	AppName = "gnmatch"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnmatch by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gnmatch by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// SFGADir is where downloaded SFGA archives are unpacked.
func SFGADir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "sfga")
}

// StoreDir is the badger snapshot of the main index and join indexes.
func StoreDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "store")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnmatch/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DatasetsFilePath returns the full path to the datasets.yaml file that
// describes join datasets.
func DatasetsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "datasets.yaml")
}
