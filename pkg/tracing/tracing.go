package tracing

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Init registers a global OTLP/HTTP tracer provider if
// OTEL_EXPORTER_OTLP_ENDPOINT is set. The exporter reads the remaining
// OTEL_EXPORTER_OTLP_* variables itself.
// Returns a flush function that must be called before process exit.
func Init(ctx context.Context) (flush func()) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return func() {}
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		slog.Warn("otlp exporter disabled", "err", err)
		return func() {}
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	slog.Info("otlp tracing enabled", "endpoint", endpoint)

	return func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			slog.Warn("flush traces", "err", err)
		}
	}
}
