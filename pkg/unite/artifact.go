package unite

import (
	"context"
	"time"

	"github.com/gnames/gnuuid"
)

// SemanticType is the declared meaning of the artifact data.
type SemanticType string

// Format is the declared file format of the artifact data.
type Format string

const (
	TaxonomyType SemanticType = "FeatureData[Taxonomy]"
	SequenceType SemanticType = "FeatureData[Sequence]"
)

const (
	TaxonomyFormat Format = "HeaderlessTSVTaxonomyFormat"
	SequenceFormat Format = "MixedCaseDNAFASTAFormat"
)

// FormatOf returns the only format accepted for a semantic type.
func FormatOf(st SemanticType) (Format, bool) {
	switch st {
	case TaxonomyType:
		return TaxonomyFormat, true
	case SequenceType:
		return SequenceFormat, true
	default:
		return "", false
	}
}

// Artifact is a handle to an imported file.
type Artifact struct {
	// UUID identifies the artifact in the store.
	UUID string `yaml:"uuid"`

	// Type is the semantic type of the data.
	Type SemanticType `yaml:"type"`

	// Format is the file format of the data.
	Format Format `yaml:"format"`

	// Path is the location of the stored data file.
	Path string `yaml:"-"`

	// Source is the base name of the imported file.
	Source string `yaml:"source"`

	// Records is the number of taxonomy lines or sequences.
	Records int `yaml:"records"`

	// ReleaseID groups artifacts that come from the same release and
	// cluster. It is empty when the release is unknown.
	ReleaseID string `yaml:"release_id,omitempty"`

	// ImportedAt is the time of the import.
	ImportedAt time.Time `yaml:"imported_at"`
}

// ReleaseID returns a stable id of a release and cluster pair. Repeated
// imports of the same data get the same id.
func ReleaseID(doi, clusterID string) string {
	return gnuuid.New(doi + "|" + clusterID).String()
}

type releaseKey struct{}

// WithRelease attaches release id to context, so importers can group
// artifacts of one release.
func WithRelease(ctx context.Context, releaseID string) context.Context {
	return context.WithValue(ctx, releaseKey{}, releaseID)
}

// ReleaseFrom returns release id attached by WithRelease, or an empty
// string.
func ReleaseFrom(ctx context.Context) string {
	if s, ok := ctx.Value(releaseKey{}).(string); ok {
		return s
	}
	return ""
}
