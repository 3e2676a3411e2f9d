package types

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyReference means a media reference string was empty.
	ErrEmptyReference = errors.New("media reference is empty")

	// ErrUnsupportedScheme means the reference scheme is not one of
	// empty/file/http/https.
	ErrUnsupportedScheme = errors.New("unsupported url scheme")

	// ErrInvalidDuration means the target duration is outside (0, max].
	ErrInvalidDuration = errors.New("invalid target duration")
)

// NotFoundError reports a local media path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("local path not found: %s", e.Path)
}

// DependencyMissingError reports an absent external tool or capability.
// Name is what is missing; Hint tells the operator how to fix it.
type DependencyMissingError struct {
	Name string
	Hint string
}

func (e *DependencyMissingError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("%s not found on PATH", e.Name)
	}
	return fmt.Sprintf("%s not found on PATH: %s", e.Name, e.Hint)
}

// DownloadError reports a failed fetch of a remote media resource.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// RenderError means both encode strategies were exhausted. Primary holds the
// stream-loop failure, Fallback the concat-list failure.
type RenderError struct {
	Primary  error
	Fallback error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed: loop strategy: %v; concat fallback: %v", e.Primary, e.Fallback)
}

func (e *RenderError) Unwrap() error { return e.Fallback }
