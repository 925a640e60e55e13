// Package telemetry wires OpenTelemetry tracing with a console exporter so
// agent runs can be inspected span by span without external infrastructure.
package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Options configures trace initialization.
type Options struct {
	// Writer receives the pretty-printed span output. Defaults to stdout.
	Writer io.Writer

	// Pretty enables multi-line JSON span rendering.
	Pretty bool
}

// Init installs a tracer provider exporting spans to the console and returns
// a tracer plus a shutdown func that flushes pending spans. Call shutdown
// before the process exits.
func Init(ctx context.Context, serviceName string, optFns ...func(o *Options)) (trace.Tracer, func(context.Context) error, error) {
	opts := Options{
		Pretty: true,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	exporterOpts := []stdouttrace.Option{}
	if opts.Writer != nil {
		exporterOpts = append(exporterOpts, stdouttrace.WithWriter(opts.Writer))
	}

	if opts.Pretty {
		exporterOpts = append(exporterOpts, stdouttrace.WithPrettyPrint())
	}

	exporter, err := stdouttrace.New(exporterOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create stdout exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
	))
	if err != nil {
		return nil, nil, fmt.Errorf("build resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)

	return provider.Tracer(serviceName), provider.Shutdown, nil
}
