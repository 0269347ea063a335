// Package otel wires OpenTelemetry tracing for Hextable services.
package otel

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/louisbranch/hextable/internal/platform/config"
)

// settings is the tracing block of the process environment. Enabled stays a
// string so that only an explicit "false" disables tracing.
type settings struct {
	Enabled  string `env:"HEXTABLE_OTEL_ENABLED" envDefault:"true"`
	Endpoint string `env:"HEXTABLE_OTEL_ENDPOINT"`
}

// ShutdownFunc flushes pending spans; callers defer it around the run loop.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup initialises OpenTelemetry tracing for the given service.
//
// Tracing is opt-in: with no HEXTABLE_OTEL_ENDPOINT configured, or with
// HEXTABLE_OTEL_ENABLED set to "false", no global provider is registered
// and the returned shutdown is a no-op.
func Setup(ctx context.Context, serviceName string) (ShutdownFunc, error) {
	var cfg settings
	if err := config.ParseEnv(&cfg); err != nil {
		return noopShutdown, err
	}
	if strings.EqualFold(cfg.Enabled, "false") || cfg.Endpoint == "" {
		return noopShutdown, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.Endpoint),
	)
	if err != nil {
		return noopShutdown, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noopShutdown, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return provider.Shutdown, nil
}
