// Package ytdlp drives the yt-dlp binary to resolve streaming-site pages
// into downloaded media files.
package ytdlp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ximi-ai/lofigen/internal/ports"
	"github.com/ximi-ai/lofigen/internal/types"
)

type Adapter struct {
	exec ports.Executor
	bin  string
}

func New(exec ports.Executor, bin string) *Adapter {
	if bin == "" {
		bin = "yt-dlp"
	}
	return &Adapter{exec: exec, bin: bin}
}

// Extract downloads a single item (never a playlist), quietly, aborting on
// any error. yt-dlp picks the container, so the final filename comes from its
// own after-move report rather than from the requested template.
func (a *Adapter) Extract(ctx context.Context, rawURL, destDir, baseName string) (string, error) {
	tmpl := filepath.Join(destDir, baseName+".%(ext)s")
	stdout, stderr, err := a.exec.Run(ctx, a.bin,
		"--no-playlist",
		"--quiet",
		"--no-warnings",
		"--abort-on-error",
		"--no-simulate",
		"--print", "after_move:filepath",
		"-o", tmpl,
		rawURL,
	)
	if err != nil {
		return "", &types.DownloadError{URL: rawURL, Err: fmt.Errorf("yt-dlp: %w\n%s", err, strings.TrimSpace(string(stderr)))}
	}
	path := lastLine(string(stdout))
	if path == "" {
		return "", &types.DownloadError{URL: rawURL, Err: fmt.Errorf("yt-dlp reported no output file")}
	}
	if _, err := os.Stat(path); err != nil {
		return "", &types.DownloadError{URL: rawURL, Err: fmt.Errorf("yt-dlp reported %s: %w", path, err)}
	}
	return path, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
