package dataset

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Fetcher downloads a published export over HTTP.
type Fetcher struct {
	Client *http.Client
	// Header is added to every request, e.g. an auth key for a private bucket.
	Header http.Header
}

func NewFetcher() *Fetcher {
	return &Fetcher{Client: &http.Client{Timeout: 60 * time.Second}}
}

// IsURL reports whether src should be fetched rather than opened from disk.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Fetch downloads rawURL and parses it as XLSX when the path or content type says so,
// CSV otherwise.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range f.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", rawURL, resp.Status)
	}

	if isWorkbook(rawURL, resp.Header.Get("Content-Type")) {
		return ReadXLSX(resp.Body)
	}
	return ReadCSV(resp.Body)
}

func isWorkbook(rawURL, contentType string) bool {
	if strings.HasPrefix(contentType, xlsxContentType) {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(path.Ext(u.Path), ".xlsx")
}
