package iodoi

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnunite/pkg/errcode"
)

var (
	// ErrNoRecord means metadata response has an empty data list.
	ErrNoRecord = errors.New("no DOI record in response")
	// ErrNoMedia means DOI record has no media files.
	ErrNoMedia = errors.New("DOI record has no media files")
	// ErrEmptyURL means the newest media file has no URL.
	ErrEmptyURL = errors.New("media file has empty url")
)

// LocateError creates an error for a DOI that could not be resolved
// to a download URL.
func LocateError(doi string, err error) error {
	msg := `Cannot find download URL for DOI <em>%s</em>

<em>Possible causes:</em>
  - DOI metadata service is unavailable
  - Network connection problems
  - Unexpected response from the service

<em>How to fix:</em>
  1. Check that <em>https://doi.org/%s</em> opens in a browser
  2. Try again later`

	vars := []any{doi, doi}

	return &gn.Error{
		Code: errcode.LocateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot locate DOI %s: %w", doi, err),
	}
}
