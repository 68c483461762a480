package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/theuerc/riddle-me-this/internal/middleware"
	"github.com/theuerc/riddle-me-this/internal/model"
)

// respondError maps domain errors to the API error envelope.
func respondError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidVideoURL):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VIDEO_URL", err.Error())
	case errors.Is(err, model.ErrVideoNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "VIDEO_NOT_FOUND", err.Error())
	case errors.Is(err, model.ErrNoTranscript), errors.Is(err, model.ErrNoContext):
		return middleware.ErrorResponse(c, fiber.StatusUnprocessableEntity, "NO_TRANSCRIPT", err.Error())
	case errors.Is(err, model.ErrAcquireInProgress):
		return middleware.ErrorResponse(c, fiber.StatusConflict, "ACQUISITION_IN_PROGRESS",
			"A transcript for this video is being acquired. Retry shortly.")
	case errors.Is(err, model.ErrCaptionsUnavailable):
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "CAPTIONS_UNAVAILABLE", err.Error())
	case errors.Is(err, model.ErrAIUnavailable):
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "AI_UNAVAILABLE", err.Error())
	default:
		middleware.Logger.Error().Err(err).Msg("unhandled request error")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}
