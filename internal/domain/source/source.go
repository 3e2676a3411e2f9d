// Package source classifies media reference strings and derives safe local
// filenames from them. Everything here is pure: no disk, no network.
package source

import (
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/ximi-ai/lofigen/internal/types"
)

// directExts are extensions fetchable with a single byte-range download.
var directExts = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".avi":  true,
	".webm": true,
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".aac":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
}

// Classify decides how a reference string will be materialized. It never
// probes the network; the decision is a function of the string alone.
func Classify(ref string) (types.SourceKind, error) {
	if strings.TrimSpace(ref) == "" {
		return 0, types.ErrEmptyReference
	}
	u, err := url.Parse(ref)
	if err != nil {
		// Not a parseable URL; treat as a plain filesystem path.
		return types.SourceLocal, nil
	}
	switch u.Scheme {
	case "", "file":
		return types.SourceLocal, nil
	case "http", "https":
		if directExts[ExtFromURL(ref)] {
			return types.SourceDirectURL, nil
		}
		return types.SourceIndirectURL, nil
	default:
		return 0, types.ErrUnsupportedScheme
	}
}

// LocalPath extracts the filesystem path from a local reference, honoring the
// file:// form.
func LocalPath(ref string) string {
	u, err := url.Parse(ref)
	if err == nil && u.Scheme == "file" {
		return u.Path
	}
	return ref
}

// ExtFromURL returns the lowercase extension of the URL's path component,
// including the dot, or "" when there is none.
func ExtFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.ToLower(path.Ext(rawURL))
	}
	return strings.ToLower(path.Ext(u.Path))
}

// SafeName reduces a label to [A-Za-z0-9._-]. Runs of any other characters
// collapse to a single underscore, leading/trailing separators are stripped,
// and an empty result falls back to the current Unix timestamp so the caller
// never ends up with an empty filename.
func SafeName(label string) string {
	var b strings.Builder
	prevSub := false
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
			prevSub = false
		default:
			if !prevSub {
				b.WriteByte('_')
				prevSub = true
			}
		}
	}
	out := strings.Trim(b.String(), "._-")
	if out == "" {
		return strconv.FormatInt(time.Now().Unix(), 10)
	}
	return out
}
