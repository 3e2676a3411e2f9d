package resolver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ximi-ai/lofigen/internal/types"
)

type fakeFetcher struct {
	url  string
	dest string
	err  error
	body []byte
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL, dest string) error {
	f.url = rawURL
	f.dest = dest
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dest, f.body, 0o644)
}

type fakeExtractor struct {
	url     string
	destDir string
	base    string
	path    string
	err     error
}

func (f *fakeExtractor) Extract(_ context.Context, rawURL, destDir, baseName string) (string, error) {
	f.url = rawURL
	f.destDir = destDir
	f.base = baseName
	return f.path, f.err
}

func TestResolve_LocalCopy(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	destDir := t.TempDir()
	content := bytes.Repeat([]byte("frame"), 4096)
	src := filepath.Join(srcDir, "rain loop.mp4")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	r := New(nil, nil)
	got, err := r.Resolve(context.Background(), src, destDir, "video")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Path != filepath.Join(destDir, "video.mp4") {
		t.Fatalf("path = %q", got.Path)
	}
	b, err := os.ReadFile(got.Path)
	if err != nil {
		t.Fatalf("read copy: %v", err)
	}
	if !bytes.Equal(b, content) {
		t.Fatal("copied bytes differ from source")
	}
	// Source untouched.
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("source removed: %v", err)
	}
}

func TestResolve_LocalAlreadyInPlace(t *testing.T) {
	t.Parallel()

	destDir := t.TempDir()
	src := filepath.Join(destDir, "video.mp4")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	r := New(nil, nil)
	got, err := r.Resolve(context.Background(), src, destDir, "video")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Path != src {
		t.Fatalf("path = %q, want in-place %q", got.Path, src)
	}
}

func TestResolve_FileScheme(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "track.mp3")
	if err := os.WriteFile(src, []byte("audio"), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	destDir := t.TempDir()
	r := New(nil, nil)
	got, err := r.Resolve(context.Background(), "file://"+src, destDir, "audio")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Path != filepath.Join(destDir, "audio.mp3") {
		t.Fatalf("path = %q", got.Path)
	}
}

func TestResolve_LocalMissing(t *testing.T) {
	t.Parallel()

	r := New(nil, nil)
	_, err := r.Resolve(context.Background(), "/does/not/exist.mp4", t.TempDir(), "video")

	var nf *types.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}

func TestResolve_EmptyAndUnsupported(t *testing.T) {
	t.Parallel()

	r := New(nil, nil)
	if _, err := r.Resolve(context.Background(), "", t.TempDir(), "video"); !errors.Is(err, types.ErrEmptyReference) {
		t.Fatalf("empty: got %v", err)
	}
	if _, err := r.Resolve(context.Background(), "ftp://host/a.mp4", t.TempDir(), "video"); !errors.Is(err, types.ErrUnsupportedScheme) {
		t.Fatalf("ftp: got %v", err)
	}
}

func TestResolve_DirectURL(t *testing.T) {
	t.Parallel()

	destDir := t.TempDir()
	ff := &fakeFetcher{body: []byte("remote-bytes")}
	r := New(ff, nil)

	got, err := r.Resolve(context.Background(), "https://cdn.example.com/loops/rain.mp4?sig=abc", destDir, "video")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	wantDest := filepath.Join(destDir, "video.mp4")
	if got.Path != wantDest || ff.dest != wantDest {
		t.Fatalf("dest = %q / %q, want %q", got.Path, ff.dest, wantDest)
	}
	if ff.url != "https://cdn.example.com/loops/rain.mp4?sig=abc" {
		t.Fatalf("fetched url = %q", ff.url)
	}
}

func TestResolve_DirectURLFailurePropagates(t *testing.T) {
	t.Parallel()

	wantErr := &types.DownloadError{URL: "u", Err: errors.New("boom")}
	r := New(&fakeFetcher{err: wantErr}, nil)
	_, err := r.Resolve(context.Background(), "https://cdn.example.com/rain.mp4", t.TempDir(), "video")

	var de *types.DownloadError
	if !errors.As(err, &de) {
		t.Fatalf("got %v, want DownloadError", err)
	}
}

func TestResolve_IndirectURL(t *testing.T) {
	t.Parallel()

	destDir := t.TempDir()
	fx := &fakeExtractor{path: filepath.Join(destDir, "video.webm")}
	r := New(nil, fx)

	got, err := r.Resolve(context.Background(), "https://tube.example/watch?v=1", destDir, "video")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// The extractor picks the container; its path wins.
	if got.Path != fx.path {
		t.Fatalf("path = %q, want extractor-chosen %q", got.Path, fx.path)
	}
	if fx.base != "video" || fx.destDir != destDir {
		t.Fatalf("extractor called with base=%q dir=%q", fx.base, fx.destDir)
	}
}

func TestResolve_IndirectWithoutExtractor(t *testing.T) {
	t.Parallel()

	r := New(&fakeFetcher{}, nil)
	_, err := r.Resolve(context.Background(), "https://tube.example/watch?v=1", t.TempDir(), "video")

	var dm *types.DependencyMissingError
	if !errors.As(err, &dm) {
		t.Fatalf("got %v, want DependencyMissingError", err)
	}
	if dm.Name != "yt-dlp" {
		t.Fatalf("missing dependency = %q, want yt-dlp", dm.Name)
	}
}
