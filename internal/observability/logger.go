package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TraceIds returns the hex trace and span ids of the span in ctx. ok is
// false when ctx carries no valid span.
func TraceIds(ctx context.Context) (traceId string, spanId string, ok bool) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", "", false
	}

	return sc.TraceID().String(), sc.SpanID().String(), true
}

// WithContext returns logger annotated with the trace and span ids of the
// span in ctx, or logger itself when there is none.
func WithContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	traceId, spanId, ok := TraceIds(ctx)
	if !ok {
		return logger
	}

	return logger.With(
		zap.String("trace_id", traceId),
		zap.String("span_id", spanId),
	)
}
