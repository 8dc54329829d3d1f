package iofetch

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnunite/pkg/errcode"
)

// HTTPError creates an error for a failed download request. Status is
// empty when no response was received.
func HTTPError(url, status string, err error) error {
	msg := "Request to <em>%s</em> failed (status: %s)"
	vars := []any{url, status}

	return &gn.Error{
		Code: errcode.FetchHTTPError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("request failed: %w", err),
	}
}

// IncompleteError creates an error for a download where the number of
// received bytes differs from the declared Content-Length.
func IncompleteError(url string, received, expected int64, err error) error {
	msg := "File download incomplete: received %s out of %s from <em>%s</em>"
	vars := []any{
		humanize.Bytes(uint64(received)),
		humanize.Bytes(uint64(expected)),
		url,
	}

	cause := fmt.Errorf(
		"file download incomplete: received %d bytes, expected %d",
		received, expected,
	)
	if err != nil {
		cause = fmt.Errorf("%w: %w", cause, err)
	}

	return &gn.Error{
		Code: errcode.FetchIncompleteError,
		Msg:  msg,
		Vars: vars,
		Err:  cause,
	}
}

// WriteError creates an error for a download that cannot be saved.
func WriteError(path string, err error) error {
	msg := "Cannot save download to <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.FetchWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write %s: %w", path, err),
	}
}

// RetriesExhaustedError creates an error for a download that failed on
// every attempt. It wraps the error of the last attempt.
func RetriesExhaustedError(url string, attempts int, last error) error {
	msg := `Cannot download <em>%s</em> after %d attempts

<em>Possible causes:</em>
  - Unstable network connection
  - Download server is overloaded

<em>How to fix:</em>
  1. Try again later
  2. Increase number of attempts with <em>--retries</em>`

	vars := []any{url, attempts}

	return &gn.Error{
		Code: errcode.FetchRetriesExhaustedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("download failed after %d attempts: %w", attempts, last),
	}
}
