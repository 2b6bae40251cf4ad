package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger пишет строку на запрос с найденным маршрутом. Health пробы
// вне development не логируются.
func Logger(env string) fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] [HTTP] ${status} - ${latency} ${method} ${path} route=${route}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
		Next: func(c fiber.Ctx) bool {
			return env != "development" && strings.HasPrefix(c.Path(), "/health/")
		},
	})
}
