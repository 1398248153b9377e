package tracing

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type Controller struct {
	tp *sdktrace.TracerProvider
}

// Init installs a global tracer provider that batches spans to the Jaeger
// collector at endpoint. With an empty endpoint it returns a controller
// whose Shutdown is a no-op and leaves the default no-op provider in place.
func Init(service, endpoint string) (*Controller, error) {
	if endpoint == "" {
		return &Controller{}, nil
	}
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", service),
		)),
	)
	otel.SetTracerProvider(tp)
	slog.Info("tracing enabled", "service", service, "endpoint", endpoint)
	return &Controller{tp: tp}, nil
}

func (c *Controller) Enabled() bool { return c.tp != nil }

func (c *Controller) Shutdown(ctx context.Context) error {
	if c.tp == nil {
		return nil
	}
	return c.tp.Shutdown(ctx)
}
