package setup

import (
	"context"
	"testing"

	"github.com/ferdian3456/postreaction/internal/config"
	"github.com/ferdian3456/postreaction/internal/exception"
	"github.com/ferdian3456/postreaction/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const TestJWTSecret = "test-secret-key-for-jwt-token-generation"

type TestApp struct {
	App   *fiber.App
	DB    *pgxpool.Pool
	Redis *redis.Client
}

// SetupTestApp builds the production route tree against the test containers.
// Rate limiting is disabled so tests can register as many users as they need.
func SetupTestApp(t *testing.T, pgURL, redisURL string, useCache bool) *TestApp {
	t.Log("Setting up test application...")

	ctx := context.Background()

	testConfig := koanf.New(".")
	_ = testConfig.Set("POSTGRES_URL", pgURL)
	_ = testConfig.Set("REDIS_URL", redisURL)
	_ = testConfig.Set("JWT_SECRET_KEY", TestJWTSecret)
	_ = testConfig.Set("USE_CACHE", useCache)
	_ = testConfig.Set("AUTH_RATE_LIMIT_MAX", 0)

	dbPool, err := pgxpool.New(ctx, pgURL)
	require.NoError(t, err, "failed to connect to test db")

	redisClient := redis.NewClient(&redis.Options{
		Addr: redisURL,
		DB:   0,
	})
	require.NoError(t, redisClient.Ping(ctx).Err(), "failed to connect to test redis")

	zapLogger := zap.NewExample()

	fiberApp := config.NewFiber(zapLogger)
	fiberApp.Use(exception.Recovery(zapLogger))
	fiberApp.Use(middleware.TraceLoggerMiddleware(zapLogger))

	config.Server(&config.ServerConfig{
		Router:  fiberApp,
		DB:      dbPool,
		DBCache: redisClient,
		Log:     zapLogger,
		Config:  testConfig,
	})

	t.Cleanup(func() {
		_ = redisClient.Close()
		dbPool.Close()
		_ = zapLogger.Sync()
	})

	return &TestApp{
		App:   fiberApp,
		DB:    dbPool,
		Redis: redisClient,
	}
}

// NewTestEnv starts containers, migrates and builds the app, registering
// every teardown on t.
func NewTestEnv(t *testing.T, useCache bool) *TestApp {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	infra, err := StartInfra(ctx, t)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = infra.Terminate(ctx, t)
	})

	require.NoError(t, RunMigration(infra.PgURL, t))

	return SetupTestApp(t, infra.PgURL, infra.RedisURL, useCache)
}
