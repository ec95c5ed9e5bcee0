package handler

import (
	"log/slog"
	"net/http"

	"github.com/tasktracker/tasktracker-go/internal/flash"
	"github.com/tasktracker/tasktracker-go/internal/middleware"
	"github.com/tasktracker/tasktracker-go/internal/view"
)

// pages renders views and carries flash notices across redirects.
type pages struct {
	renderer view.Renderer
	flashes  *flash.Store
}

// render shows name with data. Notices popped from the flash cookie come
// first, followed by msgs raised while handling this request.
func (p pages) render(w http.ResponseWriter, r *http.Request, status int, name string, data view.Data, msgs ...flash.Message) {
	if data == nil {
		data = view.Data{}
	}
	flashes := append([]flash.Message{}, flash.FromContext(r.Context())...)
	data["Flashes"] = append(flashes, msgs...)

	if err := p.renderer.Render(w, status, name, data); err != nil {
		logError(r, "render failed", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// redirect sends the client to url, queueing msgs for the page it lands on.
func (p pages) redirect(w http.ResponseWriter, r *http.Request, url string, msgs ...flash.Message) {
	if err := p.flashes.Add(w, msgs...); err != nil {
		slog.Warn("flash encode failed", "error", err, "request_id", middleware.RequestIDFromContext(r.Context()))
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return false
	}
	return true
}

// logError logs msg tagged with the request's ID.
func logError(r *http.Request, msg string, args ...any) {
	args = append(args, "request_id", middleware.RequestIDFromContext(r.Context()))
	slog.Error(msg, args...)
}
