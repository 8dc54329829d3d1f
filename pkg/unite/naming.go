package unite

import (
	"path/filepath"
	"strings"
)

// UNITE archives follow a file naming convention where tokens are
// separated by underscores, for example
// sh_taxonomy_qiime_ver9_99_25.07.2023_dev.txt.
const (
	// DevMarker marks archive members meant for tools (developer files).
	DevMarker = "_dev"

	// clusterField is the zero-based index of the cluster token.
	clusterField = 4
)

// Kind tells how a file is classified.
type Kind int

const (
	// Other files are ignored.
	Other Kind = iota
	// Taxonomy files are headerless TSV taxonomy tables.
	Taxonomy
	// Sequence files are FASTA files.
	Sequence
)

// String returns a name of the kind.
func (k Kind) String() string {
	switch k {
	case Taxonomy:
		return "taxonomy"
	case Sequence:
		return "sequence"
	default:
		return "other"
	}
}

// Type returns the semantic type and format used to import files of
// the kind. Other has no type.
func (k Kind) Type() (SemanticType, Format, bool) {
	switch k {
	case Taxonomy:
		return TaxonomyType, TaxonomyFormat, true
	case Sequence:
		return SequenceType, SequenceFormat, true
	default:
		return "", "", false
	}
}

// IsDevMember reports whether an archive member path contains DevMarker.
func IsDevMember(path string) bool {
	return strings.Contains(path, DevMarker)
}

// ClusterID returns the cluster token of a file name. It is the fifth
// underscore-delimited token of the base name. Names with fewer tokens
// return false.
func ClusterID(name string) (string, bool) {
	fields := strings.Split(filepath.Base(name), "_")
	if len(fields) <= clusterField {
		return "", false
	}
	return fields[clusterField], true
}

// MatchCluster reports whether the cluster token of a file name is
// exactly clusterID.
func MatchCluster(name, clusterID string) bool {
	id, ok := ClusterID(name)
	return ok && id == clusterID
}

// Classify returns the kind of file by its extension.
func Classify(name string) Kind {
	switch {
	case strings.HasSuffix(name, ".txt"):
		return Taxonomy
	case strings.HasSuffix(name, ".fasta"):
		return Sequence
	default:
		return Other
	}
}
