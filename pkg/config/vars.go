package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gnunite"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnunite by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gnunite by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// TempDir returns the parent directory of per-run temporary workspaces.
// Returns ~/.cache/gnunite/tmp by default.
func TempDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "tmp")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnunite/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ArtifactsDir returns the default location of the artifact store.
// Returns ~/.local/share/gnunite/artifacts by default.
func ArtifactsDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "artifacts")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gnunite/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
