package unite

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnunite/pkg/errcode"
)

// UnknownDOIError creates an error for a release that is absent from
// the DOI table. Dimension is one of "version", "taxon group" or
// "singletons".
func UnknownDOIError(dimension, value string, known []string) error {
	msg := `Unknown UNITE DOI for %s <em>%s</em>

<em>Known values:</em> %s

<em>How to fix:</em>
  1. Run <em>gnunite dois</em> to see available releases`

	vars := []any{dimension, value, strings.Join(known, ", ")}

	return &gn.Error{
		Code: errcode.UnknownDOIError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("unknown DOI for %s %q", dimension, value),
	}
}
