package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptUniteVersion sets the UNITE release version, for example "9.0".
// Unknown versions are not rejected here, DOI lookup reports them.
func OptUniteVersion(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Unite Version", s) {
			c.Unite.Version = s
		}
	}
}

// OptUniteTaxonGroup sets the taxon group ("fungi" or "eukaryotes").
func OptUniteTaxonGroup(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidString("Unite Taxon Group", s) {
			c.Unite.TaxonGroup = s
		}
	}
}

// OptUniteClusterID sets the cluster identifier of files to extract.
func OptUniteClusterID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Unite Cluster ID", s) {
			c.Unite.ClusterID = s
		}
	}
}

// OptUniteSingletons selects release variant with or without singletons.
func OptUniteSingletons(b bool) Option {
	return func(c *Config) {
		c.Unite.Singletons = b
	}
}

// OptDownloadMetadataURL sets the DOI metadata endpoint.
func OptDownloadMetadataURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidURL("Download Metadata URL", s) {
			c.Download.MetadataURL = s
		}
	}
}

// OptDownloadRetries sets the number of download attempts.
func OptDownloadRetries(i int) Option {
	return func(c *Config) {
		if isValidInt("Download Retries", i) {
			c.Download.Retries = i
		}
	}
}

// OptDownloadChunkSize sets the size of a single read from the download
// stream.
func OptDownloadChunkSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Download Chunk Size", i) {
			c.Download.ChunkSize = i
		}
	}
}

// OptDownloadTimeout sets the timeout of the metadata request.
func OptDownloadTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Download Timeout", d, false) {
			c.Download.Timeout = d
		}
	}
}

// OptDownloadBackoffBase sets the first delay between download attempts.
// Zero is allowed and disables delays.
func OptDownloadBackoffBase(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Download Backoff Base", d, true) {
			c.Download.BackoffBase = d
		}
	}
}

// OptDownloadBackoffMax sets the upper limit of delay between attempts.
func OptDownloadBackoffMax(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Download Backoff Max", d, false) {
			c.Download.BackoffMax = d
		}
	}
}

// OptArtifactsDir sets the location of the artifact store.
func OptArtifactsDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Artifacts Dir", s) {
			c.Artifacts.Dir = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptWithProgress turns the download progress bar on or off.
// Runtime-only field - not in ToOptions().
func OptWithProgress(b bool) Option {
	return func(c *Config) {
		c.WithProgress = b
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
