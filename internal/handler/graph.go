package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/theuerc/riddle-me-this/internal/middleware"
	"github.com/theuerc/riddle-me-this/internal/service"
)

type GraphHandler struct {
	graphs *service.GraphService
}

func NewGraphHandler(graphs *service.GraphService) *GraphHandler {
	return &GraphHandler{graphs: graphs}
}

// Get handles GET /api/videos/:videoId/graph — the entity co-occurrence
// graph as JSON nodes and edges.
func (h *GraphHandler) Get(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VIDEO_ID", errMsg)
	}

	graph, err := h.graphs.Build(c.Context(), videoID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(graph)
}
