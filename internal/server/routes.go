package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/squaredrill/internal/handler/health"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	sessions := deps.Sessions
	broker := deps.Broker

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Square Drill API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, deps.Checks).Routes())

	r.Post("/api/sessions", handleCreateSession(sessions))

	// {id} resolved by sessionMiddleware.
	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Use(sessionMiddleware(sessions))
		r.Get("/", handleGetSession())
		r.Delete("/", handleDeleteSession(sessions))
		r.Post("/mode", handleSelectMode())
		r.Post("/toggle", handleToggle())
		r.Post("/answer", handleAnswer())
		r.Get("/events", handleEvents(broker))
		r.Get("/ws", handleWS(logger, broker))
	})

	if dir := deps.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			logger.Info("serving static files", "dir", dir)
			r.NotFound(handleSPA(dir))
			return
		}
		logger.Warn("static dir not found, using embedded page", "dir", dir)
	}
	r.NotFound(handleEmbedded())
}
