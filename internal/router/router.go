package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/theuerc/riddle-me-this/internal/handler"
	"github.com/theuerc/riddle-me-this/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Health     *handler.HealthHandler
	Video      *handler.VideoHandler
	Transcript *handler.TranscriptHandler
	QA         *handler.QAHandler
	Graph      *handler.GraphHandler
	Stats      *handler.StatsHandler
	Export     *handler.ExportHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics sit outside the API group
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.NewMetricsHandler())

	videoLimit := middleware.NewVideoRateLimiter().Handler()
	questionLimit := middleware.NewQuestionRateLimiter().Handler()
	graphLimit := middleware.NewGraphRateLimiter().Handler()
	statsLimit := middleware.NewStatsRateLimiter().Handler()
	exportLimit := middleware.NewExportRateLimiter().Handler()

	api := app.Group("/api")

	// Video routes
	api.Get("/videos", h.Video.Lookup, videoLimit)
	api.Get("/videos/:videoId", h.Video.Get, videoLimit)
	api.Get("/videos/:videoId/transcript", h.Transcript.Get, videoLimit)
	api.Get("/videos/:videoId/graph", h.Graph.Get, graphLimit)
	api.Get("/videos/:videoId/export", h.Export.Get, exportLimit)

	// Question answering
	api.Post("/questions", h.QA.Ask, questionLimit)

	// Stats
	api.Get("/stats", h.Stats.Get, statsLimit)
}
