package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetLoggerFromContext returns the request logger set by TraceLoggerMiddleware.
// Routes mounted without it get a no-op logger.
func GetLoggerFromContext(c *fiber.Ctx) *zap.Logger {
	if logger, ok := c.Locals(loggerLocalKey).(*zap.Logger); ok {
		return logger
	}

	return zap.NewNop()
}
