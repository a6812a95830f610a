package middleware

import (
	"errors"

	"github.com/fadilmartias/connect-matching/internal/util"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler renders errors that escape handlers, such as unknown routes or oversized
// bodies, in the standard error envelope.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			logger.Error("unhandled error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    code,
			Message: message,
		}, err)
	}
}
