package serverutils

import (
	"errors"

	"markit-notes-be/internal/pkg/apperror"
	"markit-notes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error onto an HTTP status.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindValidation, apperror.KindIntegrity:
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// ErrorHandlerMiddleware turns errors returned by later handlers into the
// standard error envelope. Internal faults are logged and never echoed.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := StatusFor(err)
		message := apperror.PublicMessage(err)
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			message = fiberErr.Message
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err,
			})
			message = "Internal server error"
		}
		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}
