// Package pagegrab is the last-resort extractor for indirect URLs when
// yt-dlp is not installed: it fetches the page HTML and looks for a directly
// downloadable media link (Open Graph video tags, <video>/<source> elements).
package pagegrab

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ximi-ai/lofigen/internal/ports"
	"github.com/ximi-ai/lofigen/internal/types"
)

const (
	pageTimeout = 20 * time.Second
	maxPageSize = 4 << 20
)

type Adapter struct {
	client  *http.Client
	fetcher ports.DirectFetcher
}

func New(client *http.Client, fetcher ports.DirectFetcher) *Adapter {
	if client == nil {
		client = &http.Client{Timeout: pageTimeout}
	}
	return &Adapter{client: client, fetcher: fetcher}
}

func (a *Adapter) Extract(ctx context.Context, rawURL, destDir, baseName string) (string, error) {
	html, err := a.fetchPage(ctx, rawURL)
	if err != nil {
		return "", &types.DownloadError{URL: rawURL, Err: err}
	}
	mediaURL, err := FindMediaURL(html, rawURL)
	if err != nil {
		return "", &types.DownloadError{
			URL: rawURL,
			Err: fmt.Errorf("%w (install yt-dlp for full streaming-site support)", err),
		}
	}
	ext := path.Ext(mediaURL)
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	if ext == "" {
		ext = ".mp4"
	}
	dest := filepath.Join(destDir, baseName+ext)
	if err := a.fetcher.Fetch(ctx, mediaURL, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func (a *Adapter) fetchPage(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
}

// FindMediaURL parses HTML and returns the first plausible media stream URL,
// resolved against pageURL. Pure function of its inputs.
func FindMediaURL(html []byte, pageURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	var found string
	pick := func(v string) bool {
		v = strings.TrimSpace(v)
		if v == "" {
			return false
		}
		found = v
		return true
	}

	for _, sel := range []struct {
		query string
		attr  string
	}{
		{query: `meta[property="og:video:secure_url"]`, attr: "content"},
		{query: `meta[property="og:video:url"]`, attr: "content"},
		{query: `meta[property="og:video"]`, attr: "content"},
		{query: `meta[name="twitter:player:stream"]`, attr: "content"},
		{query: `video[src]`, attr: "src"},
		{query: `video source[src]`, attr: "src"},
	} {
		if found != "" {
			break
		}
		doc.Find(sel.query).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			v, _ := s.Attr(sel.attr)
			return !pick(v)
		})
	}
	if found == "" {
		return "", fmt.Errorf("no downloadable media link on page")
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return found, nil
	}
	ref, err := url.Parse(found)
	if err != nil {
		return "", fmt.Errorf("bad media link %q: %w", found, err)
	}
	return base.ResolveReference(ref).String(), nil
}
