package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ximi-ai/lofigen/internal/ports"
	"github.com/ximi-ai/lofigen/internal/ports/adapters/execx"
	"github.com/ximi-ai/lofigen/internal/ports/adapters/ffmpeg"
	"github.com/ximi-ai/lofigen/internal/ports/adapters/httpfetch"
	"github.com/ximi-ai/lofigen/internal/ports/adapters/pagegrab"
	"github.com/ximi-ai/lofigen/internal/ports/adapters/ytdlp"
	"github.com/ximi-ai/lofigen/internal/resolver"
	"github.com/ximi-ai/lofigen/internal/types"
	"github.com/ximi-ai/lofigen/internal/usecase"
)

// MaxDurationSec is the upper bound the orchestrator enforces on the target
// duration (six hours). The engine itself has no repeat limit.
const MaxDurationSec = 21600

type Config struct {
	VideoRef    string
	AudioRef    string
	DurationSec float64

	// OutputRoot overrides output-root discovery. Empty means walk upward
	// from the executable for a directory named "output".
	OutputRoot string

	FFmpegPath  string
	FFprobePath string
	YtdlpPath   string

	Logf func(format string, args ...any)

	// Exec substitutes the external-tool executor; nil uses os/exec.
	Exec ports.Executor
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.VideoRef) == "" {
		return fmt.Errorf("video: %w", types.ErrEmptyReference)
	}
	if strings.TrimSpace(c.AudioRef) == "" {
		return fmt.Errorf("audio: %w", types.ErrEmptyReference)
	}
	if c.DurationSec <= 0 || c.DurationSec > MaxDurationSec {
		return fmt.Errorf("%w: %.3f not in (0, %d]", types.ErrInvalidDuration, c.DurationSec, MaxDurationSec)
	}
	return nil
}

// Run executes one full invocation: tool checks, session creation, source
// resolution, render. The session directory and everything in it persist on
// both success and failure; partial downloads stay on disk for inspection.
func Run(ctx context.Context, cfg Config) (types.Artifact, error) {
	if err := cfg.Validate(); err != nil {
		return types.Artifact{}, err
	}

	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	exec := cfg.Exec
	if exec == nil {
		exec = execx.New()
	}

	ffmpegBin := defaultStr(cfg.FFmpegPath, "ffmpeg")
	ffprobeBin := defaultStr(cfg.FFprobePath, "ffprobe")
	if _, err := exec.LookPath(ffmpegBin); err != nil {
		return types.Artifact{}, &types.DependencyMissingError{
			Name: "ffmpeg",
			Hint: "install ffmpeg and ensure the ffmpeg binary is on PATH",
		}
	}
	if _, err := exec.LookPath(ffprobeBin); err != nil {
		return types.Artifact{}, &types.DependencyMissingError{
			Name: "ffprobe",
			Hint: "install ffmpeg (which includes ffprobe)",
		}
	}

	root := cfg.OutputRoot
	if root == "" {
		root = DiscoverOutputRoot(executableDir())
	}
	sessionDir := filepath.Join(root, "lofi_creation", sessionName(time.Now(), shortToken()))
	if err := os.MkdirAll(sessionDir, 0o755); err != nil {
		return types.Artifact{}, fmt.Errorf("create session dir: %w", err)
	}
	logf("session: %s", sessionDir)

	video := ffmpeg.New(exec, ffmpegBin, ffprobeBin)
	fetcher := httpfetch.New(nil)

	ytdlpBin := defaultStr(cfg.YtdlpPath, "yt-dlp")
	var extractor ports.StreamExtractor
	if _, err := exec.LookPath(ytdlpBin); err == nil {
		extractor = ytdlp.New(exec, ytdlpBin)
	} else {
		logf("yt-dlp not found, falling back to page scraping for indirect urls")
		extractor = pagegrab.New(nil, fetcher)
	}

	uc := usecase.New(usecase.Deps{
		Video:    video,
		Resolver: resolver.New(fetcher, extractor),
	})
	res, err := uc.Run(ctx, usecase.Input{
		VideoRef:    cfg.VideoRef,
		AudioRef:    cfg.AudioRef,
		DurationSec: cfg.DurationSec,
		SessionDir:  sessionDir,
		Logf:        logf,
	})
	if err != nil {
		return types.Artifact{}, err
	}
	return res.Artifact, nil
}

// DiscoverOutputRoot walks upward from startDir looking for a directory
// literally named "output", falling back to an "outputs" directory beside
// startDir when none exists anywhere up the tree.
func DiscoverOutputRoot(startDir string) string {
	dir := startDir
	for {
		out := filepath.Join(dir, "output")
		if fi, err := os.Stat(out); err == nil && fi.IsDir() {
			return out
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return filepath.Join(startDir, "outputs")
}

// sessionName keys a session by wall-clock time for human readability plus a
// random token so two invocations in the same second cannot collide.
func sessionName(now time.Time, token string) string {
	return now.Format("20060102_150405") + "_" + token
}

func shortToken() string {
	return uuid.NewString()[:8]
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		wd, werr := os.Getwd()
		if werr != nil {
			return "."
		}
		return wd
	}
	return filepath.Dir(exe)
}

func defaultStr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.DirectFetcher = (*httpfetch.Fetcher)(nil)
var _ ports.StreamExtractor = (*ytdlp.Adapter)(nil)
var _ ports.StreamExtractor = (*pagegrab.Adapter)(nil)
var _ ports.SourceResolver = (*resolver.Resolver)(nil)
var _ ports.Executor = execx.Executor{}
