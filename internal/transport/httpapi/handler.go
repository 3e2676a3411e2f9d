// Package httpapi exposes the pipeline over a small JSON API for `lofigen
// serve`.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ximi-ai/lofigen/internal/pipeline"
	"github.com/ximi-ai/lofigen/internal/types"
)

const defaultDurationSec = 600

type Handler struct {
	base pipeline.Config
	run  func(cfg pipeline.Config) (types.Artifact, error)
}

type createRequest struct {
	VideoURL        string  `json:"video_url"`
	AudioURL        string  `json:"audio_url"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type createResponse struct {
	OutputPath      string  `json:"output_path"`
	SessionDir      string  `json:"session_dir"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler builds the API handler. base carries the tool paths and output
// root applied to every request; run is substituted in tests and defaults to
// pipeline.Run with the request context.
func NewHandler(base pipeline.Config, run func(cfg pipeline.Config) (types.Artifact, error)) *Handler {
	return &Handler{base: base, run: run}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}
	if req.DurationSeconds == 0 {
		req.DurationSeconds = defaultDurationSec
	}

	cfg := h.base
	cfg.VideoRef = req.VideoURL
	cfg.AudioRef = req.AudioURL
	cfg.DurationSec = req.DurationSeconds

	art, err := h.runWith(r, cfg)
	if err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, createResponse{
		OutputPath:      art.Path,
		SessionDir:      art.SessionDir,
		DurationSeconds: art.DurationSec,
	})
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) runWith(r *http.Request, cfg pipeline.Config) (types.Artifact, error) {
	if h.run != nil {
		return h.run(cfg)
	}
	return pipeline.Run(r.Context(), cfg)
}

func statusFor(err error) int {
	var nf *types.NotFoundError
	var dm *types.DependencyMissingError
	var dl *types.DownloadError
	switch {
	case errors.Is(err, types.ErrInvalidDuration),
		errors.Is(err, types.ErrEmptyReference),
		errors.Is(err, types.ErrUnsupportedScheme):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &dm):
		return http.StatusServiceUnavailable
	case errors.As(err, &dl):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
