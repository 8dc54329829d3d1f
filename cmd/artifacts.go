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
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnunite/internal/ioartifact"
	"github.com/gnames/gnunite/pkg/config"
	"github.com/gnames/gnunite/pkg/unite"
	"github.com/spf13/cobra"
)

// getArtifactsCmd returns the artifacts command.
func getArtifactsCmd() *cobra.Command {
	artifactsCmd := &cobra.Command{
		Use:     "artifacts",
		Aliases: []string{"ls"},
		Short:   "List imported artifacts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runArtifacts(cmd.Context(), cmd.OutOrStdout(), cfg)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return artifactsCmd
}

func runArtifacts(ctx context.Context, w io.Writer, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := ioartifact.New(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	arts, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(arts) == 0 {
		gn.Info("No artifacts in <em>%s</em>", store.Dir())
		return nil
	}
	return printArtifacts(w, arts)
}

func printArtifacts(w io.Writer, arts []unite.Artifact) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "IMPORTED\tTYPE\tRECORDS\tSIZE\tUUID\tSOURCE")
	for _, a := range arts {
		size := "missing"
		if info, err := os.Stat(a.Path); err == nil {
			size = humanize.Bytes(uint64(info.Size()))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			humanize.Time(a.ImportedAt),
			a.Type,
			humanize.Comma(int64(a.Records)),
			size,
			a.UUID,
			a.Source,
		)
	}
	return tw.Flush()
}
