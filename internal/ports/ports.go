package ports

import (
	"context"

	"github.com/ximi-ai/lofigen/internal/types"
)

// Executor runs external command-line tools. It is the single seam between
// the pipeline and real binaries, so tests can assert exact argument vectors.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
	LookPath(name string) (string, error)
}

// VideoTool wraps the encode/probe operations the pipeline needs.
type VideoTool interface {
	// LoopMux loops both inputs at the stream level and cuts the output at
	// seconds. Infinite inputs mean the duration cap is the only bound.
	LoopMux(ctx context.Context, videoPath, audioPath string, seconds float64, outPath string) error
	// ConcatMux reads the video from a concat list file, loops only the
	// audio, and cuts at seconds.
	ConcatMux(ctx context.Context, listPath, audioPath string, seconds float64, outPath string) error
	// ProbeDuration returns the container-level duration in seconds.
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

// DirectFetcher downloads a resource at a direct media URL into dest.
type DirectFetcher interface {
	Fetch(ctx context.Context, rawURL, dest string) error
}

// StreamExtractor resolves an indirect URL (a watch page) to a downloaded
// media file. The extractor chooses the final filename; the returned path is
// authoritative, never a guess.
type StreamExtractor interface {
	Extract(ctx context.Context, rawURL, destDir, baseName string) (string, error)
}

// SourceResolver materializes a media reference as a local file in destDir.
type SourceResolver interface {
	Resolve(ctx context.Context, ref, destDir, label string) (types.LocalMedia, error)
}
