// Package iounite runs the whole retrieval of a UNITE release: DOI lookup,
// location of the archive, download, extraction and import.
package iounite

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnunite/internal/ioarchive"
	"github.com/gnames/gnunite/internal/ioartifact"
	"github.com/gnames/gnunite/internal/iodoi"
	"github.com/gnames/gnunite/internal/iofetch"
	"github.com/gnames/gnunite/internal/iofs"
	"github.com/gnames/gnunite/pkg/config"
	"github.com/gnames/gnunite/pkg/unite"
)

type unitedb struct {
	workDir   string
	locator   unite.Locator
	fetcher   unite.Fetcher
	extractor unite.Extractor
}

// New creates a Unite instance from its collaborators.
func New(
	cfg *config.Config,
	locator unite.Locator,
	fetcher unite.Fetcher,
	extractor unite.Extractor,
) unite.Unite {
	res := unitedb{
		workDir:   cfg.WorkDir(),
		locator:   locator,
		fetcher:   fetcher,
		extractor: extractor,
	}
	return &res
}

// NewDefault creates a Unite instance that talks to the metadata API,
// downloads over HTTP and keeps artifacts in the local artifact store.
// The returned closer releases the store.
func NewDefault(cfg *config.Config) (unite.Unite, io.Closer, error) {
	store, err := ioartifact.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	// The API client is limited by timeout, downloads only by context.
	tr := http.DefaultTransport
	apiClient := &http.Client{Transport: tr, Timeout: cfg.Download.Timeout}
	dlClient := &http.Client{Transport: tr}

	res := New(
		cfg,
		iodoi.New(cfg, apiClient),
		iofetch.New(cfg, dlClient),
		ioarchive.New(cfg, store),
	)
	return res, store, nil
}

// GetData retrieves a UNITE release and imports taxonomy and sequence
// files of the requested cluster. The download directory is removed
// before GetData returns.
func (u *unitedb) GetData(
	ctx context.Context,
	req unite.Request,
) (*unite.Result, error) {
	start := time.Now()
	if req.ClusterID == "" {
		req.ClusterID = unite.DefaultClusterID
	}

	doi, err := unite.GetDOI(req.Version, req.TaxonGroup, req.Singletons)
	if err != nil {
		return nil, err
	}
	slog.Info("UNITE release",
		"version", req.Version,
		"taxon_group", req.TaxonGroup,
		"singletons", req.Singletons,
		"cluster_id", req.ClusterID,
		"doi", doi,
	)
	gn.Info("(1/3) Locating UNITE <em>%s</em> (%s)", req.Version, doi)

	url, err := u.locator.Locate(ctx, doi)
	if err != nil {
		return nil, err
	}

	if u.workDir != "" {
		if err = iofs.MakeDir(u.workDir); err != nil {
			return nil, err
		}
	}
	dlDir, err := os.MkdirTemp(u.workDir, "download-")
	if err != nil {
		return nil, TempDirError(u.workDir, err)
	}
	slog.Info("Temporary directory", "path", dlDir)
	defer func() {
		if err := os.RemoveAll(dlDir); err != nil {
			slog.Warn("Cannot remove temporary directory",
				"path", dlDir, "error", err)
		}
	}()

	ctx = unite.WithRelease(ctx, unite.ReleaseID(doi, req.ClusterID))

	gn.Info("(2/3) Downloading <em>%s</em>", url)
	path, err := u.fetcher.Fetch(ctx, url, dlDir)
	if err != nil {
		return nil, err
	}

	gn.Info("(3/3) Extracting files for cluster <em>%s</em>", req.ClusterID)
	res, err := u.extractor.Extract(ctx, path, req.ClusterID)
	if err != nil {
		return nil, err
	}
	res.DOI = doi
	res.URL = url

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("UNITE data imported",
		"doi", doi,
		"taxonomy", len(res.Taxonomy),
		"sequences", len(res.Sequences),
		"duration", dur,
	)
	msg := fmt.Sprintf(
		"Imported %d taxonomy and %d sequence artifacts. "+
			"Elapsed time: <em>%s</em>",
		len(res.Taxonomy), len(res.Sequences), dur,
	)
	gn.Info(msg)

	return res, nil
}
