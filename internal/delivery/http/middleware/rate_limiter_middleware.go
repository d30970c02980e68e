package middleware

import (
	"time"

	"github.com/ferdian3456/postreaction/internal/constant"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

func rateLimited(message string) fiber.Map {
	return fiber.Map{
		"error": fiber.Map{
			"code":    constant.ERR_RATE_LIMIT_ERROR,
			"message": message,
		},
	}
}

// SetupRateLimiter limits every client ip to max requests per window.
// The health check is never limited.
func SetupRateLimiter(logger *zap.Logger, max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/health"
		},
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			logger.Warn("rate limit exceeded", zap.String("ip", c.IP()))
			return c.Status(fiber.StatusTooManyRequests).JSON(rateLimited("Rate limit exceeded, please try again later"))
		},
	})
}

// SetupAuthRateLimiter is the stricter limiter for register and login.
func SetupAuthRateLimiter(logger *zap.Logger, max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "auth:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			logger.Warn("auth rate limit exceeded", zap.String("ip", c.IP()))
			return c.Status(fiber.StatusTooManyRequests).JSON(rateLimited("Too many authentication attempts, please try again later"))
		},
	})
}
