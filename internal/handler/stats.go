package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/theuerc/riddle-me-this/internal/service"
)

type StatsHandler struct {
	videos      service.VideoStore
	transcripts *service.TranscriptService
}

func NewStatsHandler(videos service.VideoStore, transcripts *service.TranscriptService) *StatsHandler {
	return &StatsHandler{videos: videos, transcripts: transcripts}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(c fiber.Ctx) error {
	stats, err := h.transcripts.Stats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	if stats.Videos, err = h.videos.Count(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
