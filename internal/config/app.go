package config

import (
	"time"

	http "github.com/ferdian3456/postreaction/internal/delivery/http"
	"github.com/ferdian3456/postreaction/internal/delivery/http/middleware"
	"github.com/ferdian3456/postreaction/internal/delivery/http/route"
	"github.com/ferdian3456/postreaction/internal/repository"
	"github.com/ferdian3456/postreaction/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Router  *fiber.App
	DB      *pgxpool.Pool
	DBCache *redis.Client
	Log     *zap.Logger
	Config  *koanf.Koanf
}

// newReactionCache returns a nil interface without a redis client, which
// turns the reaction cache off.
func newReactionCache(log *zap.Logger, dbCache *redis.Client) usecase.ReactionCache {
	if dbCache == nil {
		return nil
	}

	return repository.NewReactionCacheRepository(log, dbCache)
}

// Server wires repositories, usecases and controllers and mounts the routes.
func Server(config *ServerConfig) {
	useCache := config.Config.Bool("USE_CACHE")

	postRepository := repository.NewPostRepository(config.Log, config.DB)
	reactionRepository := repository.NewReactionRepository(config.Log, config.DB)
	userRepository := repository.NewUserRepository(config.Log, config.DB, config.DBCache)

	reactionAggregator := usecase.NewReactionAggregator(reactionRepository, newReactionCache(config.Log, config.DBCache), useCache, config.Log)
	postUsecase := usecase.NewPostUsecase(postRepository, reactionAggregator, config.Log)
	userUsecase := usecase.NewUserUsecase(userRepository, config.Log, config.Config)

	postController := http.NewPostController(postUsecase, config.Log)
	userController := http.NewUserController(userUsecase, config.Log)

	authMiddleware := middleware.NewAuthMiddleware(config.Log, config.Config, userUsecase)

	var authRateLimiter fiber.Handler
	if limit := config.Config.Int("AUTH_RATE_LIMIT_MAX"); limit > 0 {
		authRateLimiter = middleware.SetupAuthRateLimiter(config.Log, limit, 5*time.Minute)
	}

	routeConfig := route.RouteConfig{
		App:             config.Router,
		AuthMiddleware:  authMiddleware,
		AuthRateLimiter: authRateLimiter,
		UserController:  userController,
		PostController:  postController,
	}

	routeConfig.SetupRoute()

	config.Log.Info("routes registered", zap.Bool("useCache", useCache))
}
