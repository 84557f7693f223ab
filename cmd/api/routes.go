package main

import (
	"context"
	"net/http"
	"time"

	"freader/internal/auth"
	"freader/internal/catalog"
	"freader/internal/httpx"
	"freader/internal/library"
	"freader/internal/platform/metrics"
	"freader/internal/stats"
	"freader/internal/user"
)

type handlers struct {
	auth    *auth.HTTPHandler
	users   *user.HTTPHandler
	catalog *catalog.HTTPHandler
	library *library.HTTPHandler
	stats   *stats.HTTPHandler
}

type route struct {
	pattern   string
	handler   http.HandlerFunc
	protected bool
}

func (h handlers) routes() []route {
	return []route{
		{"POST /v1/auth/register", h.auth.Register, false},
		{"POST /v1/auth/login", h.auth.Login, false},
		{"POST /v1/auth/logout", h.auth.Logout, true},

		{"GET /v1/me", h.users.GetCurrentUser, true},
		{"PATCH /v1/me", h.users.UpdateCurrentUser, true},
		{"GET /v1/me/stats", h.stats.Get, true},

		{"GET /v1/catalog/search", h.catalog.Search, true},
		{"GET /v1/catalog/volumes/{id}", h.catalog.GetVolume, true},

		{"GET /v1/library/books", h.library.List, true},
		{"POST /v1/library/books", h.library.Save, true},
		{"GET /v1/library/books/{id}", h.library.Get, true},
		{"PATCH /v1/library/books/{id}", h.library.Update, true},
		{"DELETE /v1/library/books/{id}", h.library.Delete, true},
		{"GET /v1/library/volumes/{googleBookId}", h.library.GetByGoogleID, true},
	}
}

// newRouter registers the API routes plus the probes and /metrics. ready may
// be nil, in which case /readyz always succeeds.
func newRouter(h handlers, requireAuth httpx.Middleware, m *metrics.Metrics, ready func(context.Context) error) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := ready(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	for _, rt := range h.routes() {
		var handler http.Handler = rt.handler
		if rt.protected {
			handler = requireAuth(handler)
		}
		mux.Handle(rt.pattern, httpx.Instrument(m, rt.pattern, handler))
	}
	return mux
}
