// Package iodoi resolves UNITE DOIs to download URLs using the PlutoF
// DOI metadata API.
package iodoi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gnames/gnunite/pkg/config"
	"github.com/gnames/gnunite/pkg/unite"
)

// response is a subset of the JSON:API document returned by the
// metadata endpoint.
type response struct {
	Data []struct {
		Attributes struct {
			Media []struct {
				URL string `json:"url"`
			} `json:"media"`
		} `json:"attributes"`
	} `json:"data"`
}

type locator struct {
	endpoint string
	client   *http.Client
}

// New creates a Locator that queries cfg.Download.MetadataURL.
// If client is nil, a client with cfg.Download.Timeout is used.
func New(cfg *config.Config, client *http.Client) unite.Locator {
	if client == nil {
		client = &http.Client{Timeout: cfg.Download.Timeout}
	}
	res := locator{
		endpoint: cfg.Download.MetadataURL,
		client:   client,
	}
	return &res
}

// Locate returns the URL of the last media file of the DOI record.
// Files are appended to a record when it is updated, so the last one
// is the newest. There is no retry at this level.
func (l *locator) Locate(ctx context.Context, doi string) (string, error) {
	reqURL, err := l.queryURL(doi)
	if err != nil {
		return "", LocateError(doi, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", LocateError(doi, err)
	}
	req.Header.Set("Accept", "application/vnd.api+json")

	slog.Info("Querying DOI metadata", "doi", doi, "url", reqURL)
	resp, err := l.client.Do(req)
	if err != nil {
		return "", LocateError(doi, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err = fmt.Errorf("unexpected status %s", resp.Status)
		return "", LocateError(doi, err)
	}

	var doc response
	if err = json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", LocateError(doi, fmt.Errorf("cannot decode response: %w", err))
	}

	return lastMediaURL(doi, doc)
}

func (l *locator) queryURL(doi string) (string, error) {
	u, err := url.Parse(l.endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("format", "vnd.api+json")
	q.Set("identifier", doi)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func lastMediaURL(doi string, doc response) (string, error) {
	if len(doc.Data) == 0 {
		return "", LocateError(doi, ErrNoRecord)
	}

	media := doc.Data[0].Attributes.Media
	if len(media) == 0 {
		return "", LocateError(doi, ErrNoMedia)
	}

	res := media[len(media)-1].URL
	if res == "" {
		return "", LocateError(doi, ErrEmptyURL)
	}

	slog.Info("Resolved DOI", "doi", doi, "url", res, "media_files", len(media))
	return res, nil
}
