package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"creative-eval-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware translates errors bubbling out of handlers into
// the response contract: AppErrors map 1:1 to status + message, anything
// else becomes a generic 500. Internal causes are logged, never sent.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			if appErr.Status >= fiber.StatusInternalServerError {
				log.Error("Server", "Request failed", map[string]interface{}{
					"path":  ctx.Path(),
					"code":  appErr.Code,
					"error": appErr.Error(),
				})
			}
			return ctx.Status(appErr.Status).JSON(ErrorResponse(appErr.Status, appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("Server", "Unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
