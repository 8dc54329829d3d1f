/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnunite/internal/iounite"
	"github.com/gnames/gnunite/pkg/config"
	"github.com/gnames/gnunite/pkg/unite"
	"github.com/spf13/cobra"
)

// getGetCmd returns the get command.
func getGetCmd() *cobra.Command {
	var (
		version    string
		taxonGroup string
		clusterID  string
		singletons bool
		retries    int
		progress   bool
	)

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Download a UNITE release and import its files",
		Long: `Download a UNITE release and import its taxonomy and sequence files.

This command:
  1. Finds the DOI of the release (version, taxon group, singletons)
  2. Asks the DOI metadata service for the newest release archive
  3. Downloads the archive, retrying incomplete downloads
  4. Extracts developer files ('_dev') of the requested cluster
  5. Imports .txt files as taxonomy and .fasta files as sequences

Imported artifacts are kept in ~/.local/share/gnunite/artifacts.
Temporary files are removed when the command finishes.

Examples:
  # Default release from config.yaml
  gnunite get

  # UNITE 8.3 for all eukaryotes, 97% clusters, with singletons
  gnunite get --version-db 8.3 -t eukaryotes -c 97 -s

  # Show download progress
  gnunite get -p`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var getOpts []config.Option
			flags := cmd.Flags()
			if flags.Changed("version-db") {
				getOpts = append(getOpts, config.OptUniteVersion(version))
			}
			if flags.Changed("taxon-group") {
				getOpts = append(getOpts, config.OptUniteTaxonGroup(taxonGroup))
			}
			if flags.Changed("cluster-id") {
				getOpts = append(getOpts, config.OptUniteClusterID(clusterID))
			}
			if flags.Changed("singletons") {
				getOpts = append(getOpts, config.OptUniteSingletons(singletons))
			}
			if flags.Changed("retries") {
				getOpts = append(getOpts, config.OptDownloadRetries(retries))
			}
			getOpts = append(getOpts, config.OptWithProgress(progress))
			cfg.Update(getOpts)

			err := runGet(cmd.Context(), cmd.OutOrStdout(), cfg)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	getCmd.Flags().StringVar(
		&version, "version-db", "",
		"UNITE release version (9.0, 8.3, 8.2)",
	)
	getCmd.Flags().StringVarP(
		&taxonGroup, "taxon-group", "t", "",
		"taxon group (fungi, eukaryotes)",
	)
	getCmd.Flags().StringVarP(
		&clusterID, "cluster-id", "c", "",
		"cluster id of imported files (99, 97, dynamic)",
	)
	getCmd.Flags().BoolVarP(
		&singletons, "singletons", "s", false,
		"use release variant with singletons",
	)
	getCmd.Flags().IntVarP(
		&retries, "retries", "r", 0,
		"number of download attempts",
	)
	getCmd.Flags().BoolVarP(
		&progress, "progress", "p", false,
		"show download progress bar",
	)

	return getCmd
}

// requestFromConfig builds a request for the release selected in cfg.
func requestFromConfig(cfg *config.Config) unite.Request {
	return unite.Request{
		Version:    cfg.Unite.Version,
		TaxonGroup: cfg.Unite.TaxonGroup,
		ClusterID:  cfg.Unite.ClusterID,
		Singletons: cfg.Unite.Singletons,
	}
}

func runGet(ctx context.Context, w io.Writer, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	u, store, err := iounite.NewDefault(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := u.GetData(ctx, requestFromConfig(cfg))
	if err != nil {
		return err
	}

	printResult(w, res)
	return nil
}

// printResult writes provenance of the release and its artifacts.
func printResult(w io.Writer, res *unite.Result) {
	fmt.Fprintf(w, "DOI:        %s\n", res.DOI)
	fmt.Fprintf(w, "URL:        %s\n", res.URL)
	fmt.Fprintf(w, "Cluster ID: %s\n", res.ClusterID)
	fmt.Fprintln(w)

	groups := []struct {
		title string
		arts  []unite.Artifact
	}{
		{"Taxonomy", res.Taxonomy},
		{"Sequences", res.Sequences},
	}
	for _, g := range groups {
		fmt.Fprintf(w, "%s (%d):\n", g.title, len(g.arts))
		for _, a := range g.arts {
			fmt.Fprintf(w, "  %s  %s records  %s\n",
				a.UUID, humanize.Comma(int64(a.Records)), a.Path)
		}
	}
}
