package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/knadh/koanf/v2"
)

const defaultAllowOrigins = "http://localhost:3000, http://localhost:8080"

// SetupCORS reads the allowed origins from CORS_ALLOW_ORIGINS.
func SetupCORS(config *koanf.Koanf) fiber.Handler {
	allowOrigins := config.String("CORS_ALLOW_ORIGINS")
	if allowOrigins == "" {
		allowOrigins = defaultAllowOrigins
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: allowOrigins != "*",
		ExposeHeaders:    "Content-Length",
		MaxAge:           86400,
	})
}
