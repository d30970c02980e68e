package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ferdian3456/postreaction/internal/config"
	httpMiddleware "github.com/ferdian3456/postreaction/internal/delivery/http/middleware"
	"github.com/ferdian3456/postreaction/internal/exception"
	"github.com/ferdian3456/postreaction/internal/middleware"
	"github.com/ferdian3456/postreaction/internal/observability"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2/middleware/compress"
	zapLog "go.uber.org/zap"
)

func main() {
	time.Local = time.UTC

	bootLog := config.NewZap(os.Getenv("LOG_LEVEL"))
	koanf := config.NewKoanf(bootLog)
	zap := config.NewZap(koanf.String("LOG_LEVEL"))

	observabilityConfig := config.LoadObservabilityConfig(koanf, zap)
	shutdownTracer := func(context.Context) error { return nil }
	if observabilityConfig.Enabled() {
		shutdown, err := observability.Init(context.Background(), observabilityConfig, zap)
		if err != nil {
			zap.Fatal("failed to initialize tracing", zapLog.Error(err))
		}
		shutdownTracer = shutdown
	}

	if koanf.Bool("DB_AUTO_MIGRATE") {
		err := config.RunMigration(koanf, zap)
		if err != nil {
			zap.Fatal("failed to run database migrations", zapLog.Error(err))
		}
	}

	postgresql := config.NewPostgresqlPool(koanf, zap)
	rds := config.NewRedisClient(koanf, zap)

	fiber := config.NewFiber(zap)

	fiber.Use(exception.Recovery(zap))
	fiber.Use(otelfiber.Middleware())
	fiber.Use(middleware.TraceLoggerMiddleware(zap))
	fiber.Use(httpMiddleware.SetupCORS(koanf))
	if limit := koanf.Int("RATE_LIMIT_MAX"); limit > 0 {
		fiber.Use(httpMiddleware.SetupRateLimiter(zap, limit, time.Minute))
	}
	fiber.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	config.Server(&config.ServerConfig{
		Router:  fiber,
		DB:      postgresql,
		DBCache: rds,
		Log:     zap,
		Config:  koanf,
	})

	GO_SERVER_PORT := koanf.String("GO_SERVER")

	zap.Info("Server is running on: " + GO_SERVER_PORT)

	go func() {
		err := fiber.Listen(GO_SERVER_PORT)
		if err != nil {
			zap.Fatal("error starting server", zapLog.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	zap.Info("got one of stop signals")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := fiber.ShutdownWithContext(ctx)
	if err != nil {
		zap.Warn("timeout, forced kill!", zapLog.Error(err))
	}

	err = rds.Close()
	if err != nil {
		zap.Warn("failed to close redis client", zapLog.Error(err))
	}

	postgresql.Close()

	err = shutdownTracer(ctx)
	if err != nil {
		zap.Warn("failed to flush traces", zapLog.Error(err))
	}

	zap.Info("server has shut down gracefully")
	_ = zap.Sync()
}
