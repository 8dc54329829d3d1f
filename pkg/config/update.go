package config

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, WithProgress).
// Zero values are skipped, except for Unite.Singletons and
// Download.BackoffBase where zero is meaningful.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Unite.Version
	if s != "" {
		res = append(res, OptUniteVersion(s))
	}
	s = c.Unite.TaxonGroup
	if s != "" {
		res = append(res, OptUniteTaxonGroup(s))
	}
	s = c.Unite.ClusterID
	if s != "" {
		res = append(res, OptUniteClusterID(s))
	}
	res = append(res, OptUniteSingletons(c.Unite.Singletons))

	s = c.Download.MetadataURL
	if s != "" {
		res = append(res, OptDownloadMetadataURL(s))
	}
	i = c.Download.Retries
	if i > 0 {
		res = append(res, OptDownloadRetries(i))
	}
	i = c.Download.ChunkSize
	if i > 0 {
		res = append(res, OptDownloadChunkSize(i))
	}
	if c.Download.Timeout > 0 {
		res = append(res, OptDownloadTimeout(c.Download.Timeout))
	}
	if c.Download.BackoffBase >= 0 {
		res = append(res, OptDownloadBackoffBase(c.Download.BackoffBase))
	}
	if c.Download.BackoffMax > 0 {
		res = append(res, OptDownloadBackoffMax(c.Download.BackoffMax))
	}

	s = c.Artifacts.Dir
	if s != "" {
		res = append(res, OptArtifactsDir(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidDuration(name string, d time.Duration, allowZero bool) bool {
	res := d > 0 || (allowZero && d == 0)
	if !res {
		gn.Warn("<em>%s</em> has to be positive duration, ignoring %s", name, d)
	}
	return res
}

func isValidURL(name, s string) bool {
	u, err := url.Parse(s)
	res := err == nil && (u.Scheme == "http" || u.Scheme == "https") &&
		u.Host != ""
	if !res {
		gn.Warn("<em>%s</em> is not a valid http(s) URL, ignoring '%s'", name, s)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
