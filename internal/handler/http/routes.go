package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/api/progress", h.getProgress)
	router.Post("/api/run", h.triggerRun)
	router.Get("/api/version", h.getServerVersion)
	router.Get("/healthz", h.healthz)

	return router
}
