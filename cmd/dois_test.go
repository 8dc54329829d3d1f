package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gnames/gnunite/pkg/unite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPrintReleases verifies every known DOI is listed.
func TestPrintReleases(t *testing.T) {
	rels := unite.Releases()

	buf := new(bytes.Buffer)
	require.NoError(t, printReleases(buf, rels))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(rels)+1, "header and one line per release")
	assert.Contains(t, lines[0], "DOI")
	for _, r := range rels {
		assert.Contains(t, buf.String(), r.DOI)
	}
	assert.Contains(t, lines[1], "9.0")
}
