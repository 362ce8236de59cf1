// Package assets retrieves and writes the raw sound files the manager loads.
package assets

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// Fetcher retrieves the raw bytes stored at a location such as
// "/static/sounds/dot.mp3".
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

func (h *HTTPFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	url := strings.TrimRight(h.BaseURL, "/") + location
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("fetch %s: %s", location, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// DirFetcher resolves locations against a file tree, so "/static/sounds/dot.mp3"
// is read from "<root>/static/sounds/dot.mp3".
type DirFetcher struct {
	FS fs.FS
}

func NewDirFetcher(root string) *DirFetcher {
	return &DirFetcher{FS: os.DirFS(root)}
}

func (d *DirFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := strings.TrimPrefix(location, "/")
	data, err := fs.ReadFile(d.FS, name)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	return data, nil
}

// New picks an HTTP fetcher for http(s) URLs and a directory fetcher otherwise.
func New(source string) Fetcher {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return &HTTPFetcher{BaseURL: source}
	}
	return NewDirFetcher(source)
}
