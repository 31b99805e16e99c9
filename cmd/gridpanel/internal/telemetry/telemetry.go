// Package telemetry exports layout pass spans to an OTLP endpoint.
package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/go-drift/gridpanel/pkg/graphics"
	"github.com/go-drift/gridpanel/pkg/layout"
	"github.com/go-drift/gridpanel/pkg/virtualizing"
)

const tracerName = "gridpanel/host"

// Tracer records one span per host layout pass. A nil *Tracer is valid and
// records nothing.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// New creates an OTLP tracer if OTEL_EXPORTER_OTLP_ENDPOINT is set.
// Returns nil if the endpoint is not configured.
func New(ctx context.Context) (*Tracer, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return nil, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "gridpanel"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	return NewWithProvider(sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)), nil
}

// NewWithProvider wraps an existing provider.
func NewWithProvider(provider *sdktrace.TracerProvider) *Tracer {
	return &Tracer{provider: provider, tracer: provider.Tracer(tracerName)}
}

// LayoutPass flushes owner at available inside a "gridpanel.layout" span
// annotated with what the flush did to panel. Nothing is recorded when no
// layout is scheduled.
func (t *Tracer) LayoutPass(ctx context.Context, owner *layout.PipelineOwner, panel *virtualizing.Panel, available graphics.Size) int {
	if t == nil || !owner.NeedsLayout() {
		return owner.FlushLayout(available)
	}

	before := panel.Stats()
	_, span := t.tracer.Start(ctx, "gridpanel.layout")
	defer span.End()

	passes := owner.FlushLayout(available)
	delta := panel.Stats().Sub(before)
	start, end, ok := panel.Window()
	span.SetAttributes(
		attribute.Int("gridpanel.passes", passes),
		attribute.Int("gridpanel.items", panel.ItemCount()),
		attribute.Int("gridpanel.columns", panel.Columns()),
		attribute.Float64("gridpanel.row_height", panel.RowHeight()),
		attribute.Float64("gridpanel.viewport.y", panel.Viewport().Top),
		attribute.Bool("gridpanel.window.empty", !ok),
		attribute.Int("gridpanel.window.start", start),
		attribute.Int("gridpanel.window.end", end),
		attribute.Int("gridpanel.reconciliations", delta.Reconciliations),
		attribute.Int("gridpanel.fast_paths", delta.FastPaths),
		attribute.Int("gridpanel.created", delta.Created),
		attribute.Int("gridpanel.evicted", delta.Evicted),
		attribute.Int("gridpanel.factory_failures", delta.FactoryFailures),
	)
	return passes
}

// Shutdown flushes and closes the exporter.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
