package middleware

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"todo-calendar/pkg/logger"
)

func ErrorHandler() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				errMsg := fmt.Sprintf("Recovered from panic: %v", r)
				stack := string(debug.Stack())
				logger.ErrorLogger.Error(errMsg, zap.String("stack", stack))
				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"detail": "A server error occurred.",
				})
			}
		}()
		// Logging request masuk
		logger.RequestLogger.Info("Incoming request",
			zap.String("method", c.Method()),
			zap.String("url", c.OriginalURL()),
		)
		return c.Next()
	}
}

// FiberErrorHandler dipasang di fiber.Config.ErrorHandler untuk error yang
// tidak ditangani handler, misalnya route tidak ada atau method salah.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	detail := "A server error occurred."
	switch code {
	case fiber.StatusNotFound:
		detail = "Not found."
	case fiber.StatusMethodNotAllowed:
		detail = fmt.Sprintf("Method \"%s\" not allowed.", c.Method())
	case fiber.StatusInternalServerError:
		logger.ErrorLogger.Error("Unhandled error", zap.String("url", c.OriginalURL()), zap.Error(err))
	default:
		if fe != nil {
			detail = fe.Message
		}
	}
	return c.Status(code).JSON(fiber.Map{"detail": detail})
}
