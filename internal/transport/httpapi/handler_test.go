package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ximi-ai/lofigen/internal/pipeline"
	"github.com/ximi-ai/lofigen/internal/types"
)

func TestCreate_Success(t *testing.T) {
	t.Parallel()

	var gotCfg pipeline.Config
	h := NewHandler(
		pipeline.Config{OutputRoot: "/srv/output", FFmpegPath: "/opt/ffmpeg"},
		func(cfg pipeline.Config) (types.Artifact, error) {
			gotCfg = cfg
			return types.Artifact{
				Path:        "/srv/output/lofi_creation/s/lofi_1.mp4",
				SessionDir:  "/srv/output/lofi_creation/s",
				DurationSec: cfg.DurationSec,
			}, nil
		},
	)
	srv := httptest.NewServer(NewRouter(h))
	defer srv.Close()

	body := `{"video_url":"https://cdn.example.com/v.mp4","audio_url":"/data/a.mp3","duration_seconds":120}`
	resp, err := http.Post(srv.URL+"/api/lofi", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out createResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.OutputPath != "/srv/output/lofi_creation/s/lofi_1.mp4" {
		t.Fatalf("output path = %q", out.OutputPath)
	}
	if out.DurationSeconds != 120 {
		t.Fatalf("duration = %v", out.DurationSeconds)
	}

	// Base config fields survive, request fields overlay.
	if gotCfg.OutputRoot != "/srv/output" || gotCfg.FFmpegPath != "/opt/ffmpeg" {
		t.Fatalf("base config lost: %+v", gotCfg)
	}
	if gotCfg.VideoRef != "https://cdn.example.com/v.mp4" || gotCfg.AudioRef != "/data/a.mp3" {
		t.Fatalf("request refs lost: %+v", gotCfg)
	}
}

func TestCreate_DefaultDuration(t *testing.T) {
	t.Parallel()

	h := NewHandler(pipeline.Config{}, func(cfg pipeline.Config) (types.Artifact, error) {
		return types.Artifact{DurationSec: cfg.DurationSec}, nil
	})
	srv := httptest.NewServer(NewRouter(h))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/lofi", "application/json",
		strings.NewReader(`{"video_url":"v","audio_url":"a"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	var out createResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.DurationSeconds != 600 {
		t.Fatalf("default duration = %v, want 600", out.DurationSeconds)
	}
}

func TestCreate_ErrorStatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid duration", err: types.ErrInvalidDuration, want: http.StatusBadRequest},
		{name: "empty reference", err: types.ErrEmptyReference, want: http.StatusBadRequest},
		{name: "unsupported scheme", err: types.ErrUnsupportedScheme, want: http.StatusBadRequest},
		{name: "not found", err: &types.NotFoundError{Path: "/x"}, want: http.StatusNotFound},
		{name: "missing tool", err: &types.DependencyMissingError{Name: "ffmpeg"}, want: http.StatusServiceUnavailable},
		{name: "download failed", err: &types.DownloadError{URL: "u", Err: errors.New("x")}, want: http.StatusBadGateway},
		{name: "render failed", err: &types.RenderError{Primary: errors.New("a"), Fallback: errors.New("b")}, want: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := NewHandler(pipeline.Config{}, func(pipeline.Config) (types.Artifact, error) {
				return types.Artifact{}, tc.err
			})
			srv := httptest.NewServer(NewRouter(h))
			defer srv.Close()

			resp, err := http.Post(srv.URL+"/api/lofi", "application/json",
				strings.NewReader(`{"video_url":"v","audio_url":"a","duration_seconds":10}`))
			if err != nil {
				t.Fatalf("post: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tc.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestCreate_BadJSON(t *testing.T) {
	t.Parallel()

	h := NewHandler(pipeline.Config{}, func(pipeline.Config) (types.Artifact, error) {
		t.Fatal("run must not be called for bad json")
		return types.Artifact{}, nil
	})
	srv := httptest.NewServer(NewRouter(h))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/lofi", "application/json", strings.NewReader("{nope"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(NewRouter(NewHandler(pipeline.Config{}, nil)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
