package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.attachLogger)
	router.Use(h.withLogging)

	router.Group(func(r chi.Router) {
		r.Get("/api/health/", h.health)
		r.Get("/api/queue/", h.queueCounts)
		r.Post("/api/sync/", h.triggerDrain)
	})

	return router
}
