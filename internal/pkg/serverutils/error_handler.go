// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-resume-be/internal/apperrors"
	"ai-resume-be/internal/dto"
	"ai-resume-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware is installed as the fiber app ErrorHandler. It maps
// domain sentinels onto HTTP statuses and keeps raw error details out of
// client responses.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		var limitErr *dto.LimitExceededError
		if errors.As(err, &limitErr) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(SuccessResponseForError(limitErr))
		}

		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, apperrors.ErrValidation):
			status = fiber.StatusBadRequest
		case errors.Is(err, apperrors.ErrQuotaExceeded):
			status = fiber.StatusTooManyRequests
		case errors.Is(err, apperrors.ErrProviderUnavailable), errors.Is(err, apperrors.ErrParseFailure):
			status = fiber.StatusServiceUnavailable
		}

		if status == fiber.StatusInternalServerError {
			log.Error("http", "unhandled error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
		}

		return ctx.Status(status).JSON(ErrorResponse(apperrors.UserMessage(err)))
	}
}

// SuccessResponseForError wraps limit details in the standard envelope so
// the client can render remaining quota next to the error message.
func SuccessResponseForError(limitErr *dto.LimitExceededError) ApiResponse[*dto.LimitExceededError] {
	return ApiResponse[*dto.LimitExceededError]{
		Status:  "error",
		Message: limitErr.Error(),
		Data:    limitErr,
	}
}
