package unite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDevMember(t *testing.T) {
	tests := []struct {
		path string
		res  bool
	}{
		{"sh_qiime_release/developer/sh_refs_qiime_ver9_99_25.07.2023_dev.fasta", true},
		{"sh_taxonomy_qiime_ver9_99_25.07.2023_dev.txt", true},
		{"release_dev/readme.txt", true},
		{"sh_refs_qiime_ver9_99_25.07.2023.fasta", false},
		{"", false},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, IsDevMember(v.path), v.path)
	}
}

func TestClusterID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ok   bool
	}{
		{"ab_cd_ef_gh_99_dev.txt", "99", true},
		{"ab_cd_ef_gh_97_dev.fasta", "97", true},
		{"sh_taxonomy_qiime_ver9_dynamic_25.07.2023_dev.txt", "dynamic", true},
		{"some/dir_x/ab_cd_ef_gh_99_dev.txt", "99", true},
		{"ab_cd_ef_gh", "", false},
		{"readme.txt", "", false},
		{"ab_cd_ef_gh_", "", true},
	}
	for _, v := range tests {
		id, ok := ClusterID(v.name)
		assert.Equal(t, v.ok, ok, v.name)
		assert.Equal(t, v.id, id, v.name)
	}
}

func TestMatchCluster(t *testing.T) {
	assert.True(t, MatchCluster("ab_cd_ef_gh_99_dev.txt", "99"))
	assert.False(t, MatchCluster("ab_cd_ef_gh_97_dev.fasta", "99"))
	assert.False(t, MatchCluster("ab_cd_ef_gh_099_dev.txt", "99"),
		"string equality, not numeric")
	assert.False(t, MatchCluster("ab_cd", ""))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
	}{
		{"ab_cd_ef_gh_99_dev.txt", Taxonomy},
		{"ab_cd_ef_gh_99_dev.fasta", Sequence},
		{"ab_cd_ef_gh_99_dev.fasta.gz", Other},
		{"ab_cd_ef_gh_99_dev.TXT", Other},
		{"ab_cd_ef_gh_99_dev.fa", Other},
	}
	for _, v := range tests {
		assert.Equal(t, v.kind, Classify(v.name), v.name)
	}

	st, f, ok := Taxonomy.Type()
	assert.True(t, ok)
	assert.Equal(t, TaxonomyType, st)
	assert.Equal(t, TaxonomyFormat, f)

	st, f, ok = Sequence.Type()
	assert.True(t, ok)
	assert.Equal(t, SequenceType, st)
	assert.Equal(t, SequenceFormat, f)

	_, _, ok = Other.Type()
	assert.False(t, ok)
	assert.Equal(t, "other", Other.String())
}

func TestCmpVersion(t *testing.T) {
	assert.Equal(t, 1, cmpVersion("9.0", "8.3"))
	assert.Equal(t, -1, cmpVersion("9.0", "10.0"))
	assert.Equal(t, 0, cmpVersion("8.2", "8.2"))
	assert.Equal(t, 1, cmpVersion("8.2.1", "8.2"))
}
