package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/theuerc/riddle-me-this/internal/middleware"
	"github.com/theuerc/riddle-me-this/internal/model"
	"github.com/theuerc/riddle-me-this/internal/service"
)

type QAHandler struct {
	qa *service.QAService
}

func NewQAHandler(qa *service.QAService) *QAHandler {
	return &QAHandler{qa: qa}
}

// Ask handles POST /api/questions. The body carries either a video URL or
// a bare video ID plus the question.
func (h *QAHandler) Ask(c fiber.Ctx) error {
	var req model.QuestionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
	}

	if req.VideoURL == "" && req.VideoID == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VIDEO_URL", "videoUrl or videoId is required")
	}
	if req.VideoID != "" {
		id, errMsg := middleware.ValidateVideoID(req.VideoID)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VIDEO_ID", errMsg)
		}
		req.VideoID = id
	} else {
		raw, errMsg := middleware.ValidateVideoURL(req.VideoURL)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VIDEO_URL", errMsg)
		}
		req.VideoURL = raw
	}

	question, errMsg := middleware.ValidateQuestion(req.Question)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_QUESTION", errMsg)
	}
	req.Question = question

	lang, errMsg := middleware.ValidateLanguage(req.Language)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_LANGUAGE", errMsg)
	}
	req.Language = lang

	answer, err := h.qa.Answer(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(answer)
}
