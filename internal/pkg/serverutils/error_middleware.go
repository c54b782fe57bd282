package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping the handlers into the JSON
// envelope. fiber.Error keeps its status code; anything else becomes a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := "Internal server error"
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
			message = fe.Message
		}

		return ctx.Status(status).JSON(ErrorResponse(message, nil))
	}
}
