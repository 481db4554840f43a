package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"tasktracker/pkg/logger"
)

// RecoverMiddleware แปลง panic เป็น error 500 และ log stack ไว้
func RecoverMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.ErrorContext(c.UserContext(), "Panic recovered",
				"method", c.Method(),
				"path", c.Path(),
				"panic", fmt.Sprint(e),
			)
		},
	})
}
