package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/obinnaokechukwu/snowgo/internal/config"
)

func TestSetupNone(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Setup(config.TracingConfig{Exporter: "none"}, "dev", nil)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestSetupUnsupported(t *testing.T) {
	_, err := Setup(config.TracingConfig{Exporter: "zipkin"}, "dev", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zipkin")
}

func TestSetupStdout(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	var buf bytes.Buffer
	shutdown, err := Setup(config.TracingConfig{Exporter: "stdout", SamplingRate: 1}, "1.0.0", &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "snowgo.listen")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), "snowgo.listen")
	assert.Contains(t, buf.String(), "1.0.0")
}

func TestNewProviderRecordsSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	provider := NewProvider(exp, 0, "dev")
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	_, span := provider.Tracer("test").Start(context.Background(), "detect")
	span.End()

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "detect", spans[0].Name)
}
