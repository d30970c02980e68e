package config

import (
	"github.com/ferdian3456/postreaction/internal/observability"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

func LoadObservabilityConfig(config *koanf.Koanf, log *zap.Logger) observability.Config {
	observabilityConfig := observability.Config{
		OtelEndpoint: config.String("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelHeaders:  config.String("OTEL_EXPORTER_OTLP_HEADERS"),
		ServiceName:  config.String("OTEL_SERVICE_NAME"),
		Environment:  config.String("ENVIRONMENT"),
	}

	if observabilityConfig.Enabled() && observabilityConfig.ServiceName == "" {
		log.Fatal("OTEL_SERVICE_NAME is required when OTEL_EXPORTER_OTLP_ENDPOINT is set")
	}

	return observabilityConfig
}
