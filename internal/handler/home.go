package handler

import (
	"context"
	"net/http"

	"github.com/tasktracker/tasktracker-go/internal/view"
)

// HomeHandler serves the landing page and the health check.
type HomeHandler struct {
	pages
	db Pinger
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(renderer view.Renderer, db Pinger) *HomeHandler {
	return &HomeHandler{pages: pages{renderer: renderer}, db: db}
}

// HandleHome handles GET /.
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.Index, nil)
}

// HandleHealth handles GET /health.
func (h *HomeHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
