package route

import (
	"github.com/ferdian3456/postreaction/internal/delivery/http"
	"github.com/ferdian3456/postreaction/internal/delivery/http/middleware"
	"github.com/ferdian3456/postreaction/internal/model"

	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	App             *fiber.App
	AuthMiddleware  *middleware.AuthMiddleware
	AuthRateLimiter fiber.Handler
	UserController  *http.UserController
	PostController  *http.PostController
}

func (c *RouteConfig) SetupRoute() {
	api := c.App.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authGroup := api.Group("/auth")
	if c.AuthRateLimiter != nil {
		authGroup.Use(c.AuthRateLimiter)
	}
	authGroup.Post("/register", c.UserController.Register)
	authGroup.Post("/login", c.UserController.Login)

	protected := c.AuthMiddleware.ProtectedRoute()

	userGroup := api.Group("/users", protected)
	userGroup.Get("/me", c.UserController.GetUserInfo)
	userGroup.Post("/logout", c.UserController.Logout)

	postGroup := api.Group("/posts")
	postGroup.Get("/", c.PostController.ListPosts)
	postGroup.Get("/:postId", c.PostController.GetPost)
	postGroup.Post("/", protected, c.PostController.CreatePost)
	postGroup.Patch("/:postId", protected, c.PostController.UpdatePost)
	postGroup.Delete("/:postId", protected, c.PostController.DeletePost)

	for _, kind := range model.ReactionKinds {
		postGroup.Post("/:postId/"+string(kind), protected, c.PostController.React(kind))
	}
}
