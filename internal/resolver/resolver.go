// Package resolver materializes media references (local paths, direct media
// URLs, streaming-site pages) as local files inside a session directory.
package resolver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ximi-ai/lofigen/internal/domain/source"
	"github.com/ximi-ai/lofigen/internal/ports"
	"github.com/ximi-ai/lofigen/internal/types"
)

type Resolver struct {
	fetcher   ports.DirectFetcher
	extractor ports.StreamExtractor
}

func New(fetcher ports.DirectFetcher, extractor ports.StreamExtractor) *Resolver {
	return &Resolver{fetcher: fetcher, extractor: extractor}
}

// Resolve classifies ref and places the media in destDir under a sanitized
// label. destDir must already exist. The returned path is always the file
// that was actually produced, including an extractor-chosen one.
func (r *Resolver) Resolve(ctx context.Context, ref, destDir, label string) (types.LocalMedia, error) {
	kind, err := source.Classify(ref)
	if err != nil {
		return types.LocalMedia{}, fmt.Errorf("%s reference: %w", label, err)
	}

	base := source.SafeName(label)

	switch kind {
	case types.SourceLocal:
		path, err := r.resolveLocal(ref, destDir, base)
		if err != nil {
			return types.LocalMedia{}, err
		}
		return types.LocalMedia{Path: path, Label: label}, nil

	case types.SourceDirectURL:
		if r.fetcher == nil {
			return types.LocalMedia{}, &types.DependencyMissingError{Name: "direct fetch capability"}
		}
		dest := filepath.Join(destDir, base+source.ExtFromURL(ref))
		if err := r.fetcher.Fetch(ctx, ref, dest); err != nil {
			return types.LocalMedia{}, err
		}
		return types.LocalMedia{Path: dest, Label: label}, nil

	case types.SourceIndirectURL:
		if r.extractor == nil {
			return types.LocalMedia{}, &types.DependencyMissingError{
				Name: "yt-dlp",
				Hint: "required for streaming-site URLs",
			}
		}
		path, err := r.extractor.Extract(ctx, ref, destDir, base)
		if err != nil {
			return types.LocalMedia{}, err
		}
		return types.LocalMedia{Path: path, Label: label}, nil

	default:
		return types.LocalMedia{}, fmt.Errorf("%s reference: %w", label, types.ErrUnsupportedScheme)
	}
}

func (r *Resolver) resolveLocal(ref, destDir, base string) (string, error) {
	src := source.LocalPath(ref)
	if _, err := os.Stat(src); err != nil {
		return "", &types.NotFoundError{Path: src}
	}
	dest := filepath.Join(destDir, base+filepath.Ext(src))
	same, err := samePath(src, dest)
	if err != nil {
		return "", err
	}
	if same {
		// Already inside the session directory; use in place.
		return src, nil
	}
	if err := copyFile(src, dest); err != nil {
		return "", fmt.Errorf("copy %s: %w", src, err)
	}
	return dest, nil
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	// Resolve symlinks where the file exists; the destination usually
	// doesn't yet.
	if r, err := filepath.EvalSymlinks(absA); err == nil {
		absA = r
	}
	if r, err := filepath.EvalSymlinks(absB); err == nil {
		absB = r
	}
	return absA == absB, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	return out.Close()
}
