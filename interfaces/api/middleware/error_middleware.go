package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"tasktracker/pkg/logger"
	"tasktracker/pkg/utils"
)

// ErrorHandler ตอบ JSON สำหรับ /api และหน้า HTML สำหรับ UI
func ErrorHandler(layout string) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := utils.ErrCodeInternalError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
			switch code {
			case fiber.StatusBadRequest:
				errCode = utils.ErrCodeBadRequest
			case fiber.StatusNotFound:
				errCode = utils.ErrCodeNotFound
			default:
				errCode = ""
			}
		}

		requestID := GetRequestIDFromContext(c)
		if code >= fiber.StatusInternalServerError {
			logger.ErrorContext(c.UserContext(), "Request failed", "path", c.Path(), "request_id", requestID, "error", err)
		}

		if isAPIRequest(c) {
			return utils.ErrorResponse(c, code, errCode, message, nil)
		}

		c.Status(code)
		renderErr := c.Render("error", fiber.Map{
			"Title":     message,
			"Status":    code,
			"Message":   message,
			"RequestID": requestID,
		}, layout)
		if renderErr != nil {
			logger.ErrorContext(c.UserContext(), "Failed to render error page", "error", renderErr)
			return c.Status(code).SendString(message)
		}
		return nil
	}
}

func isAPIRequest(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/") || c.Path() == "/api"
}
