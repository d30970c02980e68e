package middleware

import (
	"time"

	"github.com/ferdian3456/postreaction/internal/observability"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const loggerLocalKey = "logger"

// TraceLoggerMiddleware stores a request logger carrying the trace and span
// ids of the current request in Locals and writes one access log line per
// request once the handler chain returns.
func TraceLoggerMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestLogger := observability.WithContext(c.UserContext(), logger).With(
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		c.Locals(loggerLocalKey, requestLogger)

		err := c.Next()

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			requestLogger.Error("request completed", fields...)
		case status >= fiber.StatusBadRequest:
			requestLogger.Info("request completed", fields...)
		default:
			requestLogger.Debug("request completed", fields...)
		}

		return err
	}
}
