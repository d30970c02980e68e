package config

import (
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// Defaults for keys that neither .env nor the environment set.
var defaults = map[string]interface{}{
	"GO_SERVER":           ":8080",
	"USE_CACHE":           true,
	"LOG_LEVEL":           "info",
	"DB_AUTO_MIGRATE":     false,
	"MIGRATIONS_PATH":     "db/migrations",
	"OTEL_SERVICE_NAME":   "postreaction",
	"ENVIRONMENT":         "development",
	"RATE_LIMIT_MAX":      100,
	"AUTH_RATE_LIMIT_MAX": 5,
}

func NewKoanf(log *zap.Logger) *koanf.Koanf {
	k := koanf.New(".")

	// .env is optional, containers pass everything through the environment
	err := k.Load(file.Provider(".env"), dotenv.Parser())
	if err != nil {
		log.Debug(".env file not found, using environment variables", zap.Error(err))
	}

	// Environment variables override .env values
	err = k.Load(env.Provider("", ".", nil), nil)
	if err != nil {
		log.Fatal("failed to load environment variables", zap.Error(err))
	}

	for key, value := range defaults {
		if !k.Exists(key) {
			_ = k.Set(key, value)
		}
	}

	return k
}
