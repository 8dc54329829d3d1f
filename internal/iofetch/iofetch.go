// Package iofetch downloads UNITE archives. Every attempt streams the
// whole file again and checks the number of received bytes against the
// Content-Length declared by the server.
package iofetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnunite/pkg/config"
	"github.com/gnames/gnunite/pkg/errcode"
	"github.com/gnames/gnunite/pkg/unite"
)

// FileName is the name of the downloaded archive.
const FileName = "unitefile.tar.gz"

type fetcher struct {
	client       *http.Client
	retries      int
	chunkSize    int
	backoffBase  time.Duration
	backoffMax   time.Duration
	withProgress bool
}

// New creates a Fetcher configured by cfg.Download. If client is nil,
// a client without timeout is used, downloads are limited by context.
func New(cfg *config.Config, client *http.Client) unite.Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	res := fetcher{
		client:       client,
		retries:      cfg.Download.Retries,
		chunkSize:    cfg.Download.ChunkSize,
		backoffBase:  cfg.Download.BackoffBase,
		backoffMax:   cfg.Download.BackoffMax,
		withProgress: cfg.WithProgress,
	}
	if res.retries < 1 {
		res.retries = 1
	}
	if res.chunkSize < 1 {
		res.chunkSize = 8192
	}
	return &res
}

// Fetch downloads url to dir/unitefile.tar.gz and returns its absolute
// path. Failed HTTP requests and incomplete downloads are retried.
// When all attempts fail, the partial file is removed and
// RetriesExhaustedError is returned.
func (f *fetcher) Fetch(ctx context.Context, url, dir string) (string, error) {
	path, err := filepath.Abs(filepath.Join(dir, FileName))
	if err != nil {
		return "", WriteError(dir, err)
	}

	var lastErr error
	for attempt := 1; attempt <= f.retries; attempt++ {
		if attempt > 1 {
			if err = f.wait(ctx, attempt-1); err != nil {
				return "", err
			}
		}

		var size int64
		size, err = f.download(ctx, url, path)
		if err == nil {
			slog.Info("Downloaded UNITE archive",
				"url", url,
				"path", path,
				"size", humanize.Bytes(uint64(size)),
				"attempt", attempt,
			)
			return path, nil
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		var gnErr *gn.Error
		if !errors.As(err, &gnErr) {
			return "", err
		}

		switch gnErr.Code {
		case errcode.FetchHTTPError:
			slog.Warn("Request failed",
				"attempt", attempt, "status", statusOf(gnErr), "error", gnErr.Err)
			gn.Warn("Request failed with code %s, on try %d", statusOf(gnErr), attempt)
		case errcode.FetchIncompleteError:
			slog.Warn("File incomplete", "attempt", attempt, "error", gnErr.Err)
			gn.Warn("File incomplete, on try %d", attempt)
		default:
			// local write problems are not fixed by downloading again
			return "", err
		}
		lastErr = err
	}

	_ = os.Remove(path)
	return "", RetriesExhaustedError(url, f.retries, lastErr)
}

// download makes one attempt and returns the number of written bytes.
func (f *fetcher) download(
	ctx context.Context,
	url, path string,
) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, HTTPError(url, "", err)
	}
	// Content-Length must describe bytes written to disk.
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, HTTPError(url, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err = fmt.Errorf("unexpected status %s", resp.Status)
		return 0, HTTPError(url, resp.Status, err)
	}

	expected := resp.ContentLength
	if expected < 0 {
		expected = 0
	}

	out, err := os.Create(path)
	if err != nil {
		return 0, WriteError(path, err)
	}
	defer out.Close()

	var body io.Reader = resp.Body
	if f.withProgress {
		bar := pb.Full.Start64(expected)
		bar.Set(pb.Bytes, true)
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
		body = bar.NewProxyReader(resp.Body)
	}

	received, readErr := f.copyChunks(out, body)
	if we, ok := readErr.(writeErr); ok {
		return received, WriteError(path, we.error)
	}

	if err = out.Close(); err != nil {
		return received, WriteError(path, err)
	}

	if readErr != nil || received != expected {
		return received, IncompleteError(url, received, expected, readErr)
	}
	return received, nil
}

type writeErr struct{ error }

// copyChunks copies r to w in chunks of f.chunkSize and returns the number
// of written bytes. Read failures are returned as is, write failures are
// wrapped into writeErr.
func (f *fetcher) copyChunks(w io.Writer, r io.Reader) (int64, error) {
	var count int64
	buf := make([]byte, f.chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, wErr := w.Write(buf[:n]); wErr != nil {
				return count, writeErr{wErr}
			}
			count += int64(n)
		}
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
	}
}

// delay returns the pause before the next attempt after failure number
// n (starting from 1).
func (f *fetcher) delay(n int) time.Duration {
	if f.backoffBase <= 0 {
		return 0
	}
	d := f.backoffBase
	for i := 1; i < n; i++ {
		d *= 2
		if f.backoffMax > 0 && d >= f.backoffMax {
			return f.backoffMax
		}
	}
	if f.backoffMax > 0 && d > f.backoffMax {
		return f.backoffMax
	}
	return d
}

func (f *fetcher) wait(ctx context.Context, n int) error {
	d := f.delay(n)
	if d == 0 {
		return ctx.Err()
	}
	slog.Info("Waiting before next attempt", "delay", d.String())
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func statusOf(err *gn.Error) string {
	if len(err.Vars) > 1 {
		if s, ok := err.Vars[1].(string); ok && s != "" {
			return s
		}
	}
	return "none"
}
