package cmd

import (
	"bytes"
	"testing"

	"github.com/gnames/gnunite/pkg/config"
	"github.com/gnames/gnunite/pkg/unite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetGetCmd_Exists verifies the get command.
func TestGetGetCmd_Exists(t *testing.T) {
	cmd := getGetCmd()
	require.NotNil(t, cmd, "Get command should exist")
	assert.Equal(t, "get", cmd.Use)
	assert.NotNil(t, cmd.RunE, "RunE should be set")
	assert.Contains(t, cmd.Long, "_dev",
		"Long description should mention developer files")
}

// TestGetGetCmd_Flags verifies flags and their short forms.
func TestGetGetCmd_Flags(t *testing.T) {
	tests := []struct {
		name  string
		short string
	}{
		{"version-db", ""},
		{"taxon-group", "t"},
		{"cluster-id", "c"},
		{"singletons", "s"},
		{"retries", "r"},
		{"progress", "p"},
	}

	cmd := getGetCmd()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag, "--%s flag should exist", tt.name)
			assert.Equal(t, tt.short, flag.Shorthand)
			assert.NotEmpty(t, flag.Usage)
		})
	}
}

// TestRequestFromConfig verifies the request follows the config.
func TestRequestFromConfig(t *testing.T) {
	c := config.New()
	c.Update([]config.Option{
		config.OptUniteVersion("8.3"),
		config.OptUniteTaxonGroup("Eukaryotes"),
		config.OptUniteClusterID("dynamic"),
		config.OptUniteSingletons(true),
	})

	req := requestFromConfig(c)
	assert.Equal(t, unite.Request{
		Version:    "8.3",
		TaxonGroup: "eukaryotes",
		ClusterID:  "dynamic",
		Singletons: true,
	}, req)
}

// TestPrintResult verifies provenance and artifact lines.
func TestPrintResult(t *testing.T) {
	res := &unite.Result{
		DOI:       "10.15156/BIO/2938079",
		URL:       "https://files.example.org/unite.tgz",
		ClusterID: "99",
		Taxonomy: []unite.Artifact{
			{UUID: "t1", Records: 12345, Path: "/store/t1/data/tax.txt"},
		},
		Sequences: []unite.Artifact{
			{UUID: "s1", Records: 10, Path: "/store/s1/data/seq.fasta"},
		},
	}

	buf := new(bytes.Buffer)
	printResult(buf, res)
	out := buf.String()

	assert.Contains(t, out, "10.15156/BIO/2938079")
	assert.Contains(t, out, "https://files.example.org/unite.tgz")
	assert.Contains(t, out, "Taxonomy (1):")
	assert.Contains(t, out, "t1  12,345 records  /store/t1/data/tax.txt")
	assert.Contains(t, out, "Sequences (1):")
	assert.Contains(t, out, "s1  10 records")
}
