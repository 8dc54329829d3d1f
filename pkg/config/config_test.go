package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/gnunite/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gnunite"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "gnunite"),
		},
		{
			msg: "temp dir",
			fn:  config.TempDir,
			res: filepath.Join(tempHome, ".cache", "gnunite", "tmp"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gnunite", "logs"),
		},
		{
			msg: "artifacts dir",
			fn:  config.ArtifactsDir,
			res: filepath.Join(tempHome, ".local", "share", "gnunite", "artifacts"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gnunite", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "9.0", cfg.Unite.Version)
		assert.Equal(t, "fungi", cfg.Unite.TaxonGroup)
		assert.Equal(t, "99", cfg.Unite.ClusterID)
		assert.False(t, cfg.Unite.Singletons)

		assert.Equal(t, "https://api.plutof.ut.ee/v1/public/dois/",
			cfg.Download.MetadataURL)
		assert.Equal(t, 10, cfg.Download.Retries)
		assert.Equal(t, 8192, cfg.Download.ChunkSize)
		assert.Equal(t, time.Minute, cfg.Download.Timeout)
		assert.Equal(t, time.Second, cfg.Download.BackoffBase)
		assert.Equal(t, 30*time.Second, cfg.Download.BackoffMax)

		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		assert.False(t, cfg.WithProgress)
		assert.Empty(t, cfg.HomeDir)
	})
}

func TestStoreDir(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/user")})
	assert.Equal(t,
		filepath.Join("/home/user", ".local", "share", "gnunite", "artifacts"),
		cfg.StoreDir())

	cfg.Update([]config.Option{config.OptArtifactsDir("/data/artifacts")})
	assert.Equal(t, "/data/artifacts", cfg.StoreDir())
}

func TestWorkDir(t *testing.T) {
	cfg := config.New()
	assert.Empty(t, cfg.WorkDir(), "no home dir means system temp dir")

	cfg.Update([]config.Option{config.OptHomeDir("/home/user")})
	assert.Equal(t, config.TempDir("/home/user"), cfg.WorkDir())
}

func TestOptionUniteVersion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets version",
			input:    "8.2",
			expected: "8.2",
		},
		{
			name:     "trims whitespace",
			input:    "  8.3  ",
			expected: "8.3",
		},
		{
			name:     "keeps unknown version for DOI lookup to report",
			input:    "1.0",
			expected: "1.0",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "9.0", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptUniteVersion(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Unite.Version)
		})
	}
}

func TestOptionUniteTaxonGroup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets group",
			input:    "eukaryotes",
			expected: "eukaryotes",
		},
		{
			name:     "normalizes to lowercase",
			input:    "Fungi",
			expected: "fungi",
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "fungi", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptUniteTaxonGroup(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Unite.TaxonGroup)
		})
	}
}

func TestOptionUniteClusterIDAndSingletons(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptUniteClusterID("dynamic"),
		config.OptUniteSingletons(true),
	})
	assert.Equal(t, "dynamic", cfg.Unite.ClusterID)
	assert.True(t, cfg.Unite.Singletons)

	cfg.Update([]config.Option{config.OptUniteClusterID("")})
	assert.Equal(t, "dynamic", cfg.Unite.ClusterID)
}

func TestOptionDownloadRetries(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets retries",
			input:    3,
			expected: 3,
		},
		{
			name:     "ignores zero",
			input:    0,
			expected: 10, // Should keep default
		},
		{
			name:     "ignores negative",
			input:    -1,
			expected: 10, // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDownloadRetries(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Download.Retries)
		})
	}
}

func TestOptionDownloadMetadataURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets https url",
			input:    "https://example.org/dois/",
			expected: "https://example.org/dois/",
		},
		{
			name:     "sets http url",
			input:    "http://127.0.0.1:8080/",
			expected: "http://127.0.0.1:8080/",
		},
		{
			name:     "ignores non-http scheme",
			input:    "ftp://example.org/",
			expected: "https://api.plutof.ut.ee/v1/public/dois/",
		},
		{
			name:     "ignores garbage",
			input:    "not a url",
			expected: "https://api.plutof.ut.ee/v1/public/dois/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDownloadMetadataURL(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Download.MetadataURL)
		})
	}
}

func TestOptionDownloadBackoff(t *testing.T) {
	cfg := config.New()

	cfg.Update([]config.Option{config.OptDownloadBackoffBase(0)})
	assert.Equal(t, time.Duration(0), cfg.Download.BackoffBase,
		"zero base disables delays")

	cfg.Update([]config.Option{config.OptDownloadBackoffBase(-time.Second)})
	assert.Equal(t, time.Duration(0), cfg.Download.BackoffBase)

	cfg.Update([]config.Option{config.OptDownloadBackoffMax(0)})
	assert.Equal(t, 30*time.Second, cfg.Download.BackoffMax)

	cfg.Update([]config.Option{config.OptDownloadBackoffMax(time.Minute)})
	assert.Equal(t, time.Minute, cfg.Download.BackoffMax)

	cfg.Update([]config.Option{config.OptDownloadTimeout(0)})
	assert.Equal(t, time.Minute, cfg.Download.Timeout)
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid log level - debug",
			input:    "debug",
			expected: "debug",
		},
		{
			name:     "sets valid log level - warn",
			input:    "warn",
			expected: "warn",
		},
		{
			name:     "normalizes to lowercase",
			input:    "ERROR",
			expected: "error",
		},
		{
			name:     "ignores invalid value",
			input:    "trace",
			expected: "info", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptLogLevel(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionLogDestination(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptLogDestination("STDERR")})
	assert.Equal(t, "stderr", cfg.Log.Destination)

	cfg.Update([]config.Option{config.OptLogDestination("syslog")})
	assert.Equal(t, "stderr", cfg.Log.Destination)
}

func TestToOptionsRoundTrip(t *testing.T) {
	src := config.New()
	src.Update([]config.Option{
		config.OptUniteVersion("8.2"),
		config.OptUniteTaxonGroup("eukaryotes"),
		config.OptUniteClusterID("97"),
		config.OptUniteSingletons(true),
		config.OptDownloadRetries(4),
		config.OptDownloadBackoffBase(0),
		config.OptArtifactsDir("/data/artifacts"),
		config.OptLogFormat("text"),
		config.OptHomeDir("/home/user"),
		config.OptWithProgress(true),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, src.Unite, dst.Unite)
	assert.Equal(t, src.Download, dst.Download)
	assert.Equal(t, src.Artifacts, dst.Artifacts)
	assert.Equal(t, src.Log, dst.Log)

	// runtime-only fields are not carried over
	assert.Empty(t, dst.HomeDir)
	assert.False(t, dst.WithProgress)
}
