package httpapi

import (
	"github.com/gorilla/mux"
)

// NewRouter configures the API routes.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/lofi", h.Create).Methods("POST")
	r.HandleFunc("/api/health", h.Health).Methods("GET")
	return r
}
