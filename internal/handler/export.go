package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/theuerc/riddle-me-this/internal/middleware"
	"github.com/theuerc/riddle-me-this/internal/service"
)

type ExportHandler struct {
	transcripts *service.TranscriptService
}

func NewExportHandler(transcripts *service.TranscriptService) *ExportHandler {
	return &ExportHandler{transcripts: transcripts}
}

// Get handles GET /api/videos/:videoId/export — every stored transcript
// row for the video as a downloadable JSON document.
func (h *ExportHandler) Get(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VIDEO_ID", errMsg)
	}

	rows, err := h.transcripts.List(c.Context(), videoID)
	if err != nil {
		return respondError(c, err)
	}
	if len(rows) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NO_TRANSCRIPTS",
			"No transcripts are stored for this video")
	}

	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="transcripts-%s.json"`, videoID))
	return c.JSON(fiber.Map{
		"videoId":     videoID,
		"exportedAt":  time.Now().UTC().Format(time.RFC3339),
		"transcripts": rows,
	})
}
