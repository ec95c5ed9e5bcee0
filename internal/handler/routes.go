package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tasktracker/tasktracker-go/internal/flash"
	"github.com/tasktracker/tasktracker-go/internal/middleware"
)

// RouterConfig bundles what NewRouter wires together.
type RouterConfig struct {
	Home      *HomeHandler
	Auth      *AuthHandler
	Posts     *PostHandler
	Flashes   *flash.Store
	RateRPS   float64
	RateBurst int
}

// NewRouter builds the application routes. Every page answers GET and POST.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", cfg.Home.HandleHealth)

	r.Group(func(r chi.Router) {
		r.Use(cfg.Flashes.Middleware)

		r.Get("/", cfg.Home.HandleHome)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateRPS, cfg.RateBurst))
			getAndPost(r, "/register", cfg.Auth.HandleRegister)
			getAndPost(r, "/login", cfg.Auth.HandleLogin)
		})

		getAndPost(r, "/list", cfg.Posts.HandleCreate)
		getAndPost(r, "/posts", cfg.Posts.HandleList)
		getAndPost(r, "/posts/{id:[0-9]+}", cfg.Posts.HandleView)
		getAndPost(r, "/posts/{id:[0-9]+}/del", cfg.Posts.HandleDelete)
	})

	return r
}

func getAndPost(r chi.Router, pattern string, h http.HandlerFunc) {
	r.Get(pattern, h)
	r.Post(pattern, h)
}
