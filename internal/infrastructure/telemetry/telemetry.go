// Package telemetry sets up OpenTelemetry tracing and metrics export and
// exposes the instruments the checkout records into.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/storefront-checkout/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/DanielPopoola/storefront-checkout"

type ShutdownFunc func(ctx context.Context) error

// Setup installs the global tracer and meter providers. Without an OTLP
// endpoint the global no-op providers are left in place.
func Setup(ctx context.Context, cfg config.TelemetryConfig) (ShutdownFunc, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !cfg.Enabled() {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry resource: %w", err)
	}

	traceOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.OTLPEndpoint)}
	metricOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.Insecure {
		traceOpts = append(traceOpts, otlptracehttp.WithInsecure())
		metricOpts = append(metricOpts, otlpmetrichttp.WithInsecure())
	}

	traceExporter, err := otlptracehttp.New(ctx, traceOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	metricExporter, err := otlpmetrichttp.New(ctx, metricOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

// Instruments groups the tracer and metric instruments of the checkout.
type Instruments struct {
	Tracer             trace.Tracer
	outcomes           metric.Int64Counter
	remoteCallDuration metric.Float64Histogram
}

// NewInstruments binds to whatever providers are globally installed, so it
// must run after Setup.
func NewInstruments() (*Instruments, error) {
	meter := otel.Meter(instrumentationName)

	outcomes, err := meter.Int64Counter("checkout.outcomes",
		metric.WithDescription("Checkout outcomes by final stage"))
	if err != nil {
		return nil, err
	}

	remoteCallDuration, err := meter.Float64Histogram("checkout.remote_call.duration",
		metric.WithDescription("Duration of commerce API calls"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &Instruments{
		Tracer:             otel.Tracer(instrumentationName),
		outcomes:           outcomes,
		remoteCallDuration: remoteCallDuration,
	}, nil
}

// RecordOutcome counts one finished checkout.
func (i *Instruments) RecordOutcome(ctx context.Context, stage string, ok bool) {
	i.outcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.Bool("ok", ok),
	))
}

// ObserveRemoteCall records how long a commerce API call took.
func (i *Instruments) ObserveRemoteCall(ctx context.Context, operation string, started time.Time, err error) {
	i.remoteCallDuration.Record(ctx, time.Since(started).Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("error", err != nil),
	))
}
