package ffmpeg

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ximi-ai/lofigen/internal/ports"
)

// Adapter invokes ffmpeg/ffprobe through an injected Executor. The argument
// vectors are a compatibility contract: operators script around them, so they
// must not drift.
type Adapter struct {
	exec    ports.Executor
	ffmpeg  string
	ffprobe string
}

func New(exec ports.Executor, ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{exec: exec, ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

// LoopMux repeats both streams without bound, so the -t cap is the only thing
// that terminates the job.
func (a *Adapter) LoopMux(ctx context.Context, videoPath, audioPath string, seconds float64, outPath string) error {
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-stream_loop", "-1", "-i", videoPath,
		"-stream_loop", "-1", "-i", audioPath,
		"-t", fmtSeconds(seconds),
	}
	args = append(args, encodeArgs()...)
	args = append(args, outPath)
	_, stderr, err := a.exec.Run(ctx, a.ffmpeg, args...)
	if err != nil {
		return fmt.Errorf("ffmpeg loop mux: %w\n%s", err, strings.TrimSpace(string(stderr)))
	}
	return nil
}

// ConcatMux feeds the video as a concat-demuxer list. -safe 0 is required
// because the list entries are absolute paths.
func (a *Adapter) ConcatMux(ctx context.Context, listPath, audioPath string, seconds float64, outPath string) error {
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "concat", "-safe", "0", "-i", listPath,
		"-stream_loop", "-1", "-i", audioPath,
		"-t", fmtSeconds(seconds),
	}
	args = append(args, encodeArgs()...)
	args = append(args, outPath)
	_, stderr, err := a.exec.Run(ctx, a.ffmpeg, args...)
	if err != nil {
		return fmt.Errorf("ffmpeg concat mux: %w\n%s", err, strings.TrimSpace(string(stderr)))
	}
	return nil
}

func (a *Adapter) ProbeDuration(ctx context.Context, path string) (float64, error) {
	stdout, stderr, err := a.exec.Run(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, strings.TrimSpace(string(stderr)))
	}
	s := strings.TrimSpace(string(stdout))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	if sec <= 0 {
		return 0, fmt.Errorf("non-positive duration %q", s)
	}
	return sec, nil
}

func encodeArgs() []string {
	return []string{
		"-c:v", "libx264", "-pix_fmt", "yuv420p", "-preset", "veryfast", "-crf", "20",
		"-c:a", "aac", "-b:a", "192k",
		"-shortest",
	}
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
