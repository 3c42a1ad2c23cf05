// Package httpx contains the HTTP delivery layer for the noteboard service.
// It translates presentation intents (submit post, attempt unlock, list) into
// board operations, enforces body limits and security headers, and maps
// domain errors to HTTP responses. Rendering is left entirely to clients;
// this surface speaks JSON.
// Handlers are split across files (posts.go, unlock.go, health.go, errors.go).
package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Tpepper2001/noteboard/internal/board"
	"github.com/Tpepper2001/noteboard/internal/domain"
)

// BoardPort abstracts the subset of *board.Board used by the HTTP layer.
// It is satisfied by *board.Board in production and mocked in tests.
type BoardPort interface {
	Create(ctx context.Context, text, password string, ttl time.Duration) (domain.Post, error)
	List(now time.Time) []domain.Post
	Unlock(id domain.PostID, submitted string, now time.Time) (domain.Post, bool, error)
}

// Handler wires HTTP endpoints to the board.
// It is safe for concurrent use. Zero-value is not valid; construct via New.
type Handler struct {
	Board         BoardPort
	Clock         board.Clock
	Mode          board.Mode
	BoardPassword string                      // shared mode posting gate
	TTLOptions    []domain.TTLOption          // offered lifetime menu
	MaxBody       int64                       // request body cap (0 disables)
	Readiness     func(context.Context) error // optional readiness probe
}

// New returns a configured Handler.
func New(b BoardPort, clock board.Clock, mode board.Mode) *Handler {
	return &Handler{Board: b, Clock: clock, Mode: mode}
}

// Router constructs an http.Handler with all routes mounted and the
// security-header and correlation middleware applied.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(h.secureHeaders)
	r.Use(CorrelationIDMiddleware)

	r.Get("/healthz", h.handleHealth)
	r.Get("/readyz", h.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", h.handleListPosts)
		r.Post("/", h.handleCreatePost)
		r.Post("/{id}/unlock", h.handleUnlock)
	})
	r.Get("/api/ttl-options", h.handleTTLOptions)

	return r
}

// secureHeaders middleware adds standard security & cache control headers.
// Every response on this surface is dynamic JSON, so caching is disabled
// outright.
func (h *Handler) secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		next.ServeHTTP(w, r)
	})
}
