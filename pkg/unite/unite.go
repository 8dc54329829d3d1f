// Package unite describes retrieval of UNITE reference databases.
//
// A UNITE release is published under a DOI. The DOI is resolved to the
// newest archive of the release, the archive is downloaded and its
// members are filtered by a cluster identifier. Files that pass the
// filter become taxonomy or sequence artifacts.
//
// The package is pure: it keeps the static DOI table, naming convention
// helpers and interfaces of collaborators. Implementations that touch
// network or file system live in internal/io* packages.
package unite

import "context"

// Unite retrieves artifacts of a UNITE release.
type Unite interface {
	// GetData resolves, downloads and extracts a UNITE release and returns
	// imported taxonomy and sequence artifacts. Temporary files are
	// removed before it returns.
	GetData(ctx context.Context, req Request) (*Result, error)
}

// Locator resolves a DOI to the URL of the newest file of the release.
type Locator interface {
	Locate(ctx context.Context, doi string) (string, error)
}

// Fetcher downloads a URL into a directory and returns the path of the
// downloaded file.
type Fetcher interface {
	Fetch(ctx context.Context, url, dir string) (string, error)
}

// Extractor opens a downloaded archive and imports files that belong to
// the cluster.
type Extractor interface {
	Extract(ctx context.Context, archivePath, clusterID string) (*Result, error)
}

// Importer validates a file against its declared format and registers it
// as an artifact. The file can be removed after Import returns.
// Delete removes an imported artifact, it is used to undo imports of a
// run that failed.
type Importer interface {
	Import(
		ctx context.Context,
		semType SemanticType,
		path string,
		format Format,
	) (Artifact, error)
	Delete(ctx context.Context, uuid string) error
}

// Request identifies a release variant and a cluster inside of it.
type Request struct {
	// Version of the release, for example "9.0".
	Version string

	// TaxonGroup is "fungi" or "eukaryotes".
	TaxonGroup string

	// ClusterID selects files by similarity threshold label. Empty value
	// means DefaultClusterID.
	ClusterID string

	// Singletons selects release variant that includes singletons.
	Singletons bool
}

// DefaultClusterID is used when Request.ClusterID is empty.
const DefaultClusterID = "99"

// Result contains artifacts produced from one release.
// Order of artifacts follows the order of files in the archive.
type Result struct {
	// DOI of the release.
	DOI string

	// URL the archive was downloaded from.
	URL string

	// ClusterID used for filtering.
	ClusterID string

	// Taxonomy artifacts, imported from .txt files.
	Taxonomy []Artifact

	// Sequences artifacts, imported from .fasta files.
	Sequences []Artifact
}
