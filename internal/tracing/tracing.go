// Package tracing installs the OpenTelemetry tracer provider used for
// listener spans.
package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/obinnaokechukwu/snowgo/internal/config"
)

// ShutdownFunc flushes and stops the installed provider.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup installs a global tracer provider according to cfg. The "none"
// exporter leaves the global no-op provider in place. Spans from the stdout
// exporter are written to w.
func Setup(cfg config.TracingConfig, version string, w io.Writer) (ShutdownFunc, error) {
	var exporter sdktrace.SpanExporter
	switch cfg.Exporter {
	case "", "none":
		return noopShutdown, nil
	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("creating stdout exporter: %w", err)
		}
		exporter = exp
	default:
		return nil, fmt.Errorf("unsupported trace exporter %q", cfg.Exporter)
	}

	provider := NewProvider(exporter, cfg.SamplingRate, version)
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}

// NewProvider builds a provider that samples at rate and exports through exp.
// A rate outside (0, 1] samples everything.
func NewProvider(exp sdktrace.SpanExporter, rate float64, version string) *sdktrace.TracerProvider {
	sampler := sdktrace.AlwaysSample()
	if rate > 0 && rate < 1 {
		sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("snowgo"),
		semconv.ServiceVersion(version),
	)

	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSyncer(exp),
		sdktrace.WithSampler(sampler),
	)
}
