package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/theuerc/riddle-me-this/internal/middleware"
	"github.com/theuerc/riddle-me-this/internal/service"
)

type TranscriptHandler struct {
	transcripts *service.TranscriptService
}

func NewTranscriptHandler(transcripts *service.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{transcripts: transcripts}
}

// Get handles GET /api/videos/:videoId/transcript?lang=en. A video with no
// captions anywhere triggers acquisition inline, so the first call can be
// slow.
func (h *TranscriptHandler) Get(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VIDEO_ID", errMsg)
	}
	lang, errMsg := middleware.ValidateLanguage(fiber.Query[string](c, "lang"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_LANGUAGE", errMsg)
	}

	t, err := h.transcripts.Get(c.Context(), videoID, lang)
	if err != nil {
		return respondError(c, err)
	}
	if t.IsPlaceholder() {
		return middleware.ErrorResponse(c, fiber.StatusUnprocessableEntity, "NO_TRANSCRIPT",
			"This video has no captions and no transcription could be produced.")
	}

	return c.JSON(fiber.Map{
		"videoId":     t.VideoID,
		"lang":        t.LanguageCode,
		"isGenerated": t.IsGenerated,
		"isWhisper":   t.IsWhisper(),
		"text":        t.Text,
		"segments":    t.Segments,
	})
}
