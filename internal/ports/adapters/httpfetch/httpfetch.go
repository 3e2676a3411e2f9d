// Package httpfetch downloads direct media URLs with a streaming HTTP GET.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ximi-ai/lofigen/internal/types"
)

const defaultTimeout = 60 * time.Second

type Fetcher struct {
	client *http.Client
}

func New(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Fetcher{client: client}
}

// Fetch streams the resource to dest. A non-2xx status or a mid-stream copy
// failure removes the partial file: a truncated download must never look like
// a complete one.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &types.DownloadError{URL: rawURL, Err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return &types.DownloadError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &types.DownloadError{URL: rawURL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	out, err := os.Create(dest)
	if err != nil {
		return &types.DownloadError{URL: rawURL, Err: err}
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(dest)
		return &types.DownloadError{URL: rawURL, Err: err}
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return &types.DownloadError{URL: rawURL, Err: err}
	}
	return nil
}
