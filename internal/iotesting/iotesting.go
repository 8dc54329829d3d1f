// Package iotesting provides shared test utilities.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/gnunite/internal/iofs"
	"github.com/gnames/gnunite/pkg/config"
	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Member is an entry of a test archive. Entries with IsDir set become
// directories, others become regular files with Body as content.
type Member struct {
	Name  string
	Body  string
	IsDir bool
}

// GetTestConfig returns a configuration with HomeDir in a temporary
// directory, so tests never touch real user directories. All GNunite
// directories are created and download backoff is disabled.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    cfg := iotesting.GetTestConfig(t)
//	    // ... cfg.WorkDir() and cfg.StoreDir() exist
//	}
func GetTestConfig(t *testing.T, opts ...config.Option) *config.Config {
	t.Helper()
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))

	cfg := config.New()
	base := []config.Option{
		config.OptHomeDir(home),
		config.OptDownloadBackoffBase(0),
	}
	cfg.Update(append(base, opts...))
	return cfg
}

// TarGz returns a gzip-compressed tar archive with the given members.
func TarGz(t *testing.T, members []Member) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := pgzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for _, m := range members {
		hdr := &tar.Header{
			Name:     m.Name,
			Mode:     0644,
			Size:     int64(len(m.Body)),
			Typeflag: tar.TypeReg,
			ModTime:  time.Now(),
		}
		if m.IsDir {
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0755
			hdr.Size = 0
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if !m.IsDir {
			_, err := tw.Write([]byte(m.Body))
			require.NoError(t, err)
		}
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

// WriteTarGz saves an archive made by TarGz into a temporary directory
// and returns its path.
func WriteTarGz(t *testing.T, members []Member) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unitefile.tar.gz")
	require.NoError(t, os.WriteFile(path, TarGz(t, members), 0644))
	return path
}

// AssertNoTempDirs checks that no temporary workspaces are left in
// cfg.WorkDir(). A missing work directory counts as empty.
func AssertNoTempDirs(t *testing.T, cfg *config.Config) {
	t.Helper()
	entries, err := os.ReadDir(cfg.WorkDir())
	if os.IsNotExist(err) {
		return
	}
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Empty(t, names, "temporary directories should be removed")
}
