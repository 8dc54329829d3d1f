// Package ioarchive extracts developer files from a UNITE archive and
// imports those that belong to a requested cluster.
package ioarchive

import (
	"archive/tar"
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/gnames/gnunite/pkg/config"
	"github.com/gnames/gnunite/pkg/unite"
	"github.com/klauspost/pgzip"
)

type extractor struct {
	workDir  string
	importer unite.Importer
}

// New creates an Extractor. Scratch directories are created inside of
// cfg.WorkDir(), files are handed to imp.
func New(cfg *config.Config, imp unite.Importer) unite.Extractor {
	res := extractor{
		workDir:  cfg.WorkDir(),
		importer: imp,
	}
	return &res
}

// Extract unpacks members of a .tar.gz archive that contain "_dev" in
// their path and imports files of the cluster. The scratch directory is
// removed before Extract returns. If an import fails, artifacts imported
// earlier in the same call are deleted.
func (e *extractor) Extract(
	ctx context.Context,
	archivePath, clusterID string,
) (*unite.Result, error) {
	scratch, err := os.MkdirTemp(e.workDir, "extract-")
	if err != nil {
		return nil, ScratchDirError(e.workDir, err)
	}
	slog.Info("Temporary directory", "path", scratch)
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			slog.Warn("Cannot remove temporary directory",
				"path", scratch, "error", err)
		}
	}()

	names, err := unpack(ctx, archivePath, scratch)
	if err != nil {
		return nil, err
	}

	matched := make([]string, 0, len(names))
	for _, name := range names {
		if unite.MatchCluster(name, clusterID) {
			matched = append(matched, name)
		}
	}
	if len(matched) == 0 {
		return nil, NoClusterMatchError(clusterID, clusterIDs(names))
	}

	res := unite.Result{ClusterID: clusterID}
	for _, name := range matched {
		kind := unite.Classify(name)
		semType, format, ok := kind.Type()
		if !ok {
			slog.Debug("Ignoring file", "file", name)
			continue
		}

		art, err := e.importer.Import(
			ctx, semType, filepath.Join(scratch, name), format,
		)
		if err != nil {
			e.rollback(ctx, res)
			return nil, err
		}
		slog.Info("Imported file",
			"file", name, "kind", kind.String(), "uuid", art.UUID)

		switch kind {
		case unite.Taxonomy:
			res.Taxonomy = append(res.Taxonomy, art)
		case unite.Sequence:
			res.Sequences = append(res.Sequences, art)
		}
	}

	return &res, nil
}

// rollback deletes artifacts imported before a failure, so a failed
// extraction leaves nothing in the store.
func (e *extractor) rollback(ctx context.Context, res unite.Result) {
	ctx = context.WithoutCancel(ctx)
	arts := slices.Concat(res.Taxonomy, res.Sequences)
	for _, art := range arts {
		if err := e.importer.Delete(ctx, art.UUID); err != nil {
			slog.Error("Cannot delete artifact of failed import",
				"uuid", art.UUID, "error", err)
		}
	}
	if len(arts) > 0 {
		slog.Warn("Import failed, artifacts deleted", "count", len(arts))
	}
}

// unpack writes regular-file members with "_dev" in their path into dir,
// keeping only base names. It returns base names in archive order,
// without repetitions.
func unpack(ctx context.Context, archivePath, dir string) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, ArchiveReadError(archivePath, err)
	}
	defer f.Close()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return nil, ArchiveReadError(archivePath, err)
	}
	defer gz.Close()

	var names []string
	seen := make(map[string]struct{})
	tr := tar.NewReader(gz)
	for {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		// names are flattened below, so insecure paths are harmless
		if err != nil && !errors.Is(err, tar.ErrInsecurePath) {
			return nil, ArchiveReadError(archivePath, err)
		}

		if hdr.Typeflag != tar.TypeReg || !unite.IsDevMember(hdr.Name) {
			continue
		}

		// tar paths always use forward slashes
		name := path.Base(hdr.Name)
		if name == "." || name == ".." || name == "/" {
			continue
		}

		if err = writeMember(tr, filepath.Join(dir, name)); err != nil {
			return nil, ArchiveReadError(archivePath, err)
		}

		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		return nil, NoDevMembersError(archivePath)
	}
	slog.Info("Extracted developer files", "count", len(names))
	return names, nil
}

func writeMember(r io.Reader, dst string) error {
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// clusterIDs returns sorted distinct cluster tokens of file names.
func clusterIDs(names []string) []string {
	set := make(map[string]struct{})
	for _, name := range names {
		if id, ok := unite.ClusterID(name); ok {
			set[id] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}
