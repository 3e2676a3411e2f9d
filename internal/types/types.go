package types

// SourceKind classifies a media reference string.
type SourceKind int

const (
	// SourceLocal is a filesystem path (no scheme, or file://).
	SourceLocal SourceKind = iota
	// SourceDirectURL is an http(s) URL whose path extension is a known
	// media container/codec, downloadable with a plain byte fetch.
	SourceDirectURL
	// SourceIndirectURL is an http(s) URL that needs a stream extractor
	// (e.g. a streaming-platform watch page).
	SourceIndirectURL
)

func (k SourceKind) String() string {
	switch k {
	case SourceLocal:
		return "local"
	case SourceDirectURL:
		return "direct-url"
	case SourceIndirectURL:
		return "indirect-url"
	default:
		return "unknown"
	}
}

// LocalMedia is a resolved, existing media file inside a session directory.
// Label is the role the file plays ("video" or "audio"), used only for naming.
type LocalMedia struct {
	Path  string
	Label string
}

// Artifact is the muxed output of one pipeline invocation.
type Artifact struct {
	Path       string
	SessionDir string
	// DurationSec is the requested target duration, not a probed value.
	DurationSec float64
}
