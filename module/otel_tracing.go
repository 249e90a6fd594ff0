package module

import (
	"context"
	"fmt"

	"github.com/GoCodeAlone/modular"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// OTelTracing exports invocation spans over OTLP/HTTP. It implements
// modular.Module and installs its provider globally on Start.
type OTelTracing struct {
	name           string
	endpoint       string
	serviceName    string
	tracerProvider *sdktrace.TracerProvider
	logger         modular.Logger
}

// NewOTelTracing creates a tracing module exporting to endpoint
// (host:port of an OTLP/HTTP collector).
func NewOTelTracing(name, endpoint, serviceName string) *OTelTracing {
	return &OTelTracing{
		name:        name,
		endpoint:    endpoint,
		serviceName: serviceName,
		logger:      nopLogger{},
	}
}

// Name returns the module name.
func (o *OTelTracing) Name() string { return o.name }

// Init picks up the application logger.
func (o *OTelTracing) Init(app modular.Application) error {
	o.logger = app.Logger()
	return nil
}

// Start creates the exporter and installs the tracer provider.
func (o *OTelTracing) Start(ctx context.Context) error {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(o.endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceNameKey.String(o.serviceName)))
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	o.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(o.tracerProvider)

	o.logger.Info("tracing started", "endpoint", o.endpoint, "service", o.serviceName)
	return nil
}

// Stop flushes pending spans and shuts the provider down.
func (o *OTelTracing) Stop(ctx context.Context) error {
	if o.tracerProvider == nil {
		return nil
	}
	if err := o.tracerProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}
	o.logger.Info("tracing stopped")
	return nil
}

// ProvidesServices exposes the module under its name.
func (o *OTelTracing) ProvidesServices() []modular.ServiceProvider {
	return []modular.ServiceProvider{{Name: o.name, Description: "OpenTelemetry tracing", Instance: o}}
}

// RequiresServices returns nil; tracing has no dependencies.
func (o *OTelTracing) RequiresServices() []modular.ServiceDependency { return nil }
