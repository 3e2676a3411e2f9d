// Package looping holds the pure arithmetic and list building behind the
// concat-fallback render strategy.
package looping

import (
	"math"
	"strings"
)

// Repeats returns how many times a video of videoSec seconds must be
// concatenated to cover targetSec seconds. An unknown duration (the probe
// sentinel 0) degenerates to a single repeat; a genuinely near-zero source
// therefore undershoots the target, which is accepted rather than papered
// over. There is no upper clamp: the orchestrator bounds the target duration.
func Repeats(targetSec, videoSec float64) int {
	if videoSec <= 0 || targetSec <= 0 {
		return 1
	}
	n := int(math.Ceil(targetSec / videoSec))
	if n < 1 {
		return 1
	}
	return n
}

// ConcatList renders an ffmpeg concat-demuxer list referencing the same file
// n times. Paths may be absolute, which the demuxer only accepts with
// -safe 0. Single quotes are escaped the way the demuxer expects.
func ConcatList(path string, n int) string {
	escaped := strings.ReplaceAll(path, "'", `'\''`)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("file '")
		b.WriteString(escaped)
		b.WriteString("'\n")
	}
	return b.String()
}
