package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/theuerc/riddle-me-this/internal/middleware"
	"github.com/theuerc/riddle-me-this/internal/service"
)

type VideoHandler struct {
	videos *service.VideoService
}

func NewVideoHandler(videos *service.VideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

// Lookup handles GET /api/videos?url=... — resolve a pasted URL and return
// the video's metadata.
func (h *VideoHandler) Lookup(c fiber.Ctx) error {
	raw, errMsg := middleware.ValidateVideoURL(fiber.Query[string](c, "url"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VIDEO_URL", errMsg)
	}

	videoID, err := h.videos.Resolve(raw)
	if err != nil {
		return respondError(c, err)
	}

	v, err := h.videos.Get(c.Context(), videoID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(v)
}

// Get handles GET /api/videos/:videoId.
func (h *VideoHandler) Get(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VIDEO_ID", errMsg)
	}

	v, err := h.videos.Get(c.Context(), videoID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(v)
}
