// Package http exposes the local status API of the sync daemon: pending
// queue counts, a manual drain trigger, and a liveness endpoint. This is the
// surface the admin dashboard polls; it never serves application traffic.
package http

import (
	"github.com/Ivanblancs/weave-sync/internal/logger"
	"github.com/Ivanblancs/weave-sync/internal/service"
)

type Handler struct {
	engine service.SyncEngine

	logger *logger.Logger
}

func NewHandler(engine service.SyncEngine, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		engine: engine,
		logger: logger,
	}
}
