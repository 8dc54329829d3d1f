package ioartifact

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnunite/pkg/errcode"
	"github.com/gnames/gnunite/pkg/unite"
)

// FormatError creates an error for a format that does not fit the
// semantic type.
func FormatError(semType unite.SemanticType, format unite.Format) error {
	msg := "Format <em>%s</em> cannot hold <em>%s</em> data"
	vars := []any{format, semType}

	return &gn.Error{
		Code: errcode.ImportFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("format %s does not match type %s", format, semType),
	}
}

// ValidationError creates an error for a file that is not valid in the
// declared format.
func ValidationError(path string, format unite.Format, err error) error {
	msg := `File <em>%s</em> is not a valid <em>%s</em>

<em>Reason:</em> %s`

	vars := []any{path, format, err.Error()}

	return &gn.Error{
		Code: errcode.ImportValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid %s file %s: %w", format, path, err),
	}
}

// StoreError creates an error for failures of reading, writing or
// registering artifacts.
func StoreError(path string, err error) error {
	msg := "Cannot store artifact data at <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.ImportStoreError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("artifact store %s: %w", path, err),
	}
}
