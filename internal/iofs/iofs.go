// Package iofs prepares directories and files GNunite keeps in the
// user's home directory.
package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/gnunite/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, cache, temporary, log and artifacts
// directories if they are missing.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.TempDir(homeDir),
		config.LogDir(homeDir),
		config.ArtifactsDir(homeDir),
	}
	for _, v := range dirs {
		if err := MakeDir(v); err != nil {
			return err
		}
	}
	return nil
}

// MakeDir creates dir with missing parents. A file in the way of dir or
// of any parent gives CreateDirError.
func MakeDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless a config file
// already exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}
