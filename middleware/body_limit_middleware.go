package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	apimodels "hr-suite-backend/models/api"
)

// WithBodyLimit отклоняет запросы с заявленным Content-Length больше limit.
// Для путей из skipPrefixes (websocket и т.п.) проверка не выполняется.
func WithBodyLimit(limit int64, skipPrefixes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, prefix := range skipPrefixes {
			if strings.HasPrefix(c.Path(), prefix) {
				return c.Next()
			}
		}
		contentLength := c.Get(fiber.HeaderContentLength)
		if contentLength != "" && contentLength != "0" {
			size, err := strconv.ParseInt(contentLength, 10, 64)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректный Content-Length"))
			}
			if size > limit {
				return c.Status(fiber.StatusRequestEntityTooLarge).
					JSON(apimodels.NewError(fmt.Sprintf("размер запроса превышает допустимый: %d байт", limit)))
			}
		}

		return c.Next()
	}
}
