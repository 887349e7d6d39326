package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/api/version", h.getServerVersion)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(h.requestTimeout))

		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Post("/api/user/logout", h.logout)
		r.Get("/api/user/session", h.session)
		r.Get("/api/user/prefix", h.prefix)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
