package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnunite/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	dirs := []string{
		filepath.Join(tmpDir, ".config", "gnunite"),
		filepath.Join(tmpDir, ".cache", "gnunite"),
		filepath.Join(tmpDir, ".cache", "gnunite", "tmp"),
		filepath.Join(tmpDir, ".local", "share", "gnunite", "logs"),
		filepath.Join(tmpDir, ".local", "share", "gnunite", "artifacts"),
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), "%s should be a directory", dir)
	}
}

// TestEnsureDirs_Idempotent verifies multiple calls work.
func TestEnsureDirs_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	for range 3 {
		err := EnsureDirs(tmpDir)
		require.NoError(t, err)
	}
}

// TestEnsureDirs_FileInTheWay verifies a file where a directory
// should be gives CreateDirError.
func TestEnsureDirs_FileInTheWay(t *testing.T) {
	tmpDir := t.TempDir()
	cfgRoot := filepath.Join(tmpDir, ".config")
	err := os.WriteFile(cfgRoot, []byte("x"), 0644)
	require.NoError(t, err)

	err = EnsureDirs(tmpDir)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CreateDirError, gnErr.Code)
}

// TestMakeDir_CreatesNewDirectory verifies new directory
// creation.
func TestMakeDir_CreatesNewDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	newDir := filepath.Join(tmpDir, "test", "subdir")

	err := MakeDir(newDir)
	require.NoError(t, err)

	info, err := os.Stat(newDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

// TestEnsureConfigFile_ContentCorrect verifies config file
// content matches embedded template.
func TestEnsureConfigFile_ContentCorrect(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, ".config", "gnunite",
		"config.yaml")
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, ConfigYAML, string(content),
		"Config file content should match embedded template")
}

// TestEnsureConfigFile_Idempotent verifies existing file
// is not overwritten.
func TestEnsureConfigFile_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, ".config", "gnunite",
		"config.yaml")

	customContent := "# Custom config\nunite:\n  version: \"8.2\""
	err = os.WriteFile(configPath, []byte(customContent),
		0644)
	require.NoError(t, err)

	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, customContent, string(content),
		"Existing config file should not be overwritten")
}

// TestConfigYAML_Embedded verifies embedded config is
// valid YAML with all sections.
func TestConfigYAML_Embedded(t *testing.T) {
	require.NotEmpty(t, ConfigYAML)

	var data map[string]any
	err := yaml.Unmarshal([]byte(ConfigYAML), &data)
	require.NoError(t, err)

	for _, section := range []string{"unite", "download", "artifacts", "log"} {
		assert.Contains(t, data, section)
	}

	unite, ok := data["unite"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "9.0", unite["version"])
	assert.Equal(t, "99", unite["cluster_id"])
}

// TestMakeDir_FileInTheWay verifies that a file at the
// directory path or at a parent path is an error.
func TestMakeDir_FileInTheWay(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	for _, dir := range []string{file, filepath.Join(file, "sub")} {
		err := MakeDir(dir)
		require.Error(t, err, dir)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.CreateDirError, gnErr.Code)
	}
}
