// Package ioartifact keeps imported taxonomy and sequence files.
//
// Every artifact gets its own directory inside of the store:
//
//	<store>/<uuid>/metadata.yaml
//	<store>/<uuid>/data/<source file>
//
// Artifacts are also registered in <store>/artifacts.sqlite, so they can
// be listed without walking the directory tree.
package ioartifact

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/gnsys"
	"github.com/gnames/gnunite/internal/iofs"
	"github.com/gnames/gnunite/pkg/config"
	"github.com/gnames/gnunite/pkg/unite"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

const (
	// DBFile is the name of the artifact registry.
	DBFile = "artifacts.sqlite"

	// MetaFile keeps a description of an artifact next to its data.
	MetaFile = "metadata.yaml"

	dataDir = "data"

	// fixed width keeps lexical and chronological order the same
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store is a file system artifact store with a SQLite registry.
type Store struct {
	db  *sql.DB
	dir string
}

// New opens or creates the artifact store at cfg.StoreDir(). A leading
// "~/" of the store path means the home directory.
func New(cfg *config.Config) (*Store, error) {
	dir, err := gnsys.ConvertTilda(cfg.StoreDir())
	if err != nil {
		return nil, StoreError(cfg.StoreDir(), err)
	}
	if err = iofs.MakeDir(dir); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, DBFile)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, StoreError(dbPath, err)
	}
	db.SetMaxOpenConns(1)

	res := &Store{db: db, dir: dir}
	if err = res.createSchema(); err != nil {
		db.Close()
		return nil, StoreError(dbPath, err)
	}

	return res, nil
}

// Dir returns the location of the store.
func (s *Store) Dir() string {
	return s.dir
}

// Close releases the registry connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS artifacts (
			uuid TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			format TEXT NOT NULL,
			path TEXT NOT NULL,
			source TEXT NOT NULL,
			records INTEGER NOT NULL,
			release_id TEXT NOT NULL DEFAULT '',
			imported_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_artifacts_release_id
			ON artifacts(release_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Import validates a file against format and stores a copy of it.
// The semantic type must match the format. If context carries a release
// id (unite.WithRelease) it is saved with the artifact.
func (s *Store) Import(
	ctx context.Context,
	semType unite.SemanticType,
	path string,
	format unite.Format,
) (unite.Artifact, error) {
	var res unite.Artifact
	if want, ok := unite.FormatOf(semType); !ok || want != format {
		return res, FormatError(semType, format)
	}

	records, err := validateFile(path, format)
	if err != nil {
		return res, err
	}

	res = unite.Artifact{
		UUID:       uuid.NewString(),
		Type:       semType,
		Format:     format,
		Source:     filepath.Base(path),
		Records:    records,
		ReleaseID:  unite.ReleaseFrom(ctx),
		ImportedAt: time.Now().UTC(),
	}
	root := filepath.Join(s.dir, res.UUID)
	res.Path = filepath.Join(root, dataDir, res.Source)

	if err = s.save(path, res); err == nil {
		err = s.register(ctx, res)
	}
	if err != nil {
		if rmErr := os.RemoveAll(root); rmErr != nil {
			slog.Warn("Cannot remove artifact directory",
				"path", root, "error", rmErr)
		}
		return unite.Artifact{}, err
	}

	slog.Info("Artifact stored",
		"uuid", res.UUID,
		"type", res.Type,
		"source", res.Source,
		"records", res.Records,
	)
	return res, nil
}

// List returns registered artifacts, newest first.
func (s *Store) List(ctx context.Context) ([]unite.Artifact, error) {
	q := `SELECT uuid, type, format, path, source, records, release_id,
		imported_at
	FROM artifacts
	ORDER BY imported_at DESC, rowid DESC`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, StoreError(s.dir, err)
	}
	defer rows.Close()

	var res []unite.Artifact
	for rows.Next() {
		var art unite.Artifact
		var semType, format, importedAt string
		err = rows.Scan(
			&art.UUID, &semType, &format, &art.Path, &art.Source,
			&art.Records, &art.ReleaseID, &importedAt,
		)
		if err != nil {
			return nil, StoreError(s.dir, err)
		}
		art.Type = unite.SemanticType(semType)
		art.Format = unite.Format(format)
		art.ImportedAt, err = time.Parse(timeLayout, importedAt)
		if err != nil {
			return nil, StoreError(s.dir, err)
		}
		res = append(res, art)
	}
	if err = rows.Err(); err != nil {
		return nil, StoreError(s.dir, err)
	}

	return res, nil
}

// Delete removes an artifact from the registry together with its files.
// Unknown ids are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := uuid.Validate(id); err != nil {
		return StoreError(filepath.Join(s.dir, id), err)
	}

	q := `DELETE FROM artifacts WHERE uuid = ?`
	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return StoreError(filepath.Join(s.dir, DBFile), err)
	}

	root := filepath.Join(s.dir, id)
	if err := os.RemoveAll(root); err != nil {
		return StoreError(root, err)
	}
	slog.Info("Artifact deleted", "uuid", id)
	return nil
}

// save copies source file into the artifact directory and writes
// metadata next to it.
func (s *Store) save(src string, art unite.Artifact) error {
	if err := iofs.MakeDir(filepath.Dir(art.Path)); err != nil {
		return StoreError(art.Path, err)
	}
	if err := copyFile(src, art.Path); err != nil {
		return StoreError(art.Path, err)
	}

	meta, err := yaml.Marshal(art)
	if err != nil {
		return StoreError(art.Path, err)
	}
	metaPath := filepath.Join(s.dir, art.UUID, MetaFile)
	if err = os.WriteFile(metaPath, meta, 0644); err != nil {
		return StoreError(metaPath, err)
	}
	return nil
}

func (s *Store) register(ctx context.Context, art unite.Artifact) error {
	q := `INSERT INTO artifacts
		(uuid, type, format, path, source, records, release_id, imported_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, q,
		art.UUID, string(art.Type), string(art.Format), art.Path, art.Source,
		art.Records, art.ReleaseID, art.ImportedAt.Format(timeLayout),
	)
	if err != nil {
		return StoreError(filepath.Join(s.dir, DBFile), err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
