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
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gnames/gnunite/pkg/unite"
	"github.com/spf13/cobra"
)

// getDoisCmd returns the dois command.
func getDoisCmd() *cobra.Command {
	doisCmd := &cobra.Command{
		Use:   "dois",
		Short: "List known UNITE releases and their DOIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printReleases(cmd.OutOrStdout(), unite.Releases())
		},
	}
	return doisCmd
}

func printReleases(w io.Writer, rels []unite.Release) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tTAXON GROUP\tSINGLETONS\tDOI")
	for _, r := range rels {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n",
			r.Version, r.TaxonGroup, r.Singletons, r.DOI)
	}
	return tw.Flush()
}
