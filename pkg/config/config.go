// Package config provides configuration management for GNunite.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Unite: version, taxon_group, cluster_id, singletons
//   - Download: metadata_url, retries, chunk_size, timeout, backoff_base,
//     backoff_max
//   - Artifacts: dir
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - WithProgress (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNUNITE_ prefix with underscores for nesting:
//
//	GNUNITE_UNITE_VERSION=9.0
//	GNUNITE_DOWNLOAD_RETRIES=10
//	GNUNITE_LOG_LEVEL=info
package config

import "time"

// Config represents the complete GNunite configuration.
type Config struct {
	// Unite selects the UNITE release to fetch.
	Unite UniteConfig `mapstructure:"unite" yaml:"unite"`

	// Download contains settings for the metadata query and the archive
	// download.
	Download DownloadConfig `mapstructure:"download" yaml:"download"`

	// Artifacts contains settings of the local artifact store.
	Artifacts ArtifactsConfig `mapstructure:"artifacts" yaml:"artifacts"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// WithProgress shows a progress bar during download.
	WithProgress bool `mapstructure:"-" yaml:"-"`

	// HomeDir determines where config, cache, logs and artifacts reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// UniteConfig identifies a UNITE release and the clustering variant
// to extract from it.
type UniteConfig struct {
	// Version of UNITE release, for example "9.0".
	Version string `mapstructure:"version" yaml:"version"`

	// TaxonGroup is either "fungi" or "eukaryotes".
	TaxonGroup string `mapstructure:"taxon_group" yaml:"taxon_group"`

	// ClusterID is the similarity threshold label of the files to keep,
	// for example "99", "97" or "dynamic".
	ClusterID string `mapstructure:"cluster_id" yaml:"cluster_id"`

	// Singletons is true when the release variant with singleton
	// sequences is required.
	Singletons bool `mapstructure:"singletons" yaml:"singletons"`
}

// DownloadConfig contains network settings.
type DownloadConfig struct {
	// MetadataURL is the DOI metadata endpoint that maps a DOI to
	// downloadable files.
	MetadataURL string `mapstructure:"metadata_url" yaml:"metadata_url"`

	// Retries is the number of download attempts before giving up.
	Retries int `mapstructure:"retries" yaml:"retries"`

	// ChunkSize is the size in bytes of a read from the response body.
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size"`

	// Timeout limits the metadata request. Downloads are limited
	// only by context.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// BackoffBase is the delay after the first failed attempt. It doubles
	// with every further failure. Zero disables delays.
	BackoffBase time.Duration `mapstructure:"backoff_base" yaml:"backoff_base"`

	// BackoffMax caps the delay between attempts.
	BackoffMax time.Duration `mapstructure:"backoff_max" yaml:"backoff_max"`
}

// ArtifactsConfig contains settings of the artifact store.
type ArtifactsConfig struct {
	// Dir is the artifact store location. If empty, ArtifactsDir(HomeDir)
	// is used.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Unite: UniteConfig{
			Version:    "9.0",
			TaxonGroup: "fungi",
			ClusterID:  "99",
		},
		Download: DownloadConfig{
			MetadataURL: "https://api.plutof.ut.ee/v1/public/dois/",
			Retries:     10,
			ChunkSize:   8192,
			Timeout:     time.Minute,
			BackoffBase: time.Second,
			BackoffMax:  30 * time.Second,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}

// StoreDir returns the artifact store location, taking into account
// an explicit Artifacts.Dir setting.
func (c *Config) StoreDir() string {
	if c.Artifacts.Dir != "" {
		return c.Artifacts.Dir
	}
	return ArtifactsDir(c.HomeDir)
}

// WorkDir returns the parent of temporary workspaces. Empty HomeDir gives
// an empty string, so os.MkdirTemp falls back to the system temp directory.
func (c *Config) WorkDir() string {
	if c.HomeDir == "" {
		return ""
	}
	return TempDir(c.HomeDir)
}
