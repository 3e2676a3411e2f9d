package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ximi-ai/lofigen/internal/domain/looping"
	"github.com/ximi-ai/lofigen/internal/ports"
	"github.com/ximi-ai/lofigen/internal/types"
)

type Deps struct {
	Video    ports.VideoTool
	Resolver ports.SourceResolver
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	VideoRef    string
	AudioRef    string
	DurationSec float64
	SessionDir  string
	Logf        func(format string, args ...any)
}

type Result struct {
	Artifact types.Artifact
}

// Run resolves both inputs into the session directory and renders the looped,
// trimmed output. The stream-loop strategy is tried first; any non-zero exit
// falls through to the concat-list fallback without inspecting the cause, so
// an unrelated failure (disk full, bad audio) surfaces only after both
// strategies have been burned. Kept for compatibility with the established
// behavior.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	video, err := u.d.Resolver.Resolve(ctx, in.VideoRef, in.SessionDir, "video")
	if err != nil {
		return Result{}, err
	}
	logf("video resolved: %s", video.Path)

	audio, err := u.d.Resolver.Resolve(ctx, in.AudioRef, in.SessionDir, "audio")
	if err != nil {
		return Result{}, err
	}
	logf("audio resolved: %s", audio.Path)

	outPath := filepath.Join(in.SessionDir, fmt.Sprintf("lofi_%d.mp4", time.Now().Unix()))

	primaryErr := u.d.Video.LoopMux(ctx, video.Path, audio.Path, in.DurationSec, outPath)
	if primaryErr != nil {
		logf("stream-loop strategy failed, trying concat fallback: %v", primaryErr)
		if err := u.concatFallback(ctx, video.Path, audio.Path, in.DurationSec, outPath); err != nil {
			return Result{}, &types.RenderError{Primary: primaryErr, Fallback: err}
		}
	}
	logf("rendered %s", outPath)

	return Result{Artifact: types.Artifact{
		Path:        outPath,
		SessionDir:  in.SessionDir,
		DurationSec: in.DurationSec,
	}}, nil
}

func (u Usecase) concatFallback(ctx context.Context, videoPath, audioPath string, seconds float64, outPath string) error {
	// Advisory probe: unknown duration degrades to a single repeat.
	videoSec, err := u.d.Video.ProbeDuration(ctx, videoPath)
	if err != nil {
		videoSec = 0
	}
	repeats := looping.Repeats(seconds, videoSec)

	absVideo, err := filepath.Abs(videoPath)
	if err != nil {
		return err
	}
	listDir, err := os.MkdirTemp("", "lofigen-concat-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(listDir)
	listPath := filepath.Join(listDir, "concat_list.txt")
	if err := os.WriteFile(listPath, []byte(looping.ConcatList(absVideo, repeats)), 0o644); err != nil {
		return err
	}

	return u.d.Video.ConcatMux(ctx, listPath, audioPath, seconds, outPath)
}
