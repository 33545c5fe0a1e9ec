package observability

import (
	"context"
	"io"
	"os"
	"time"

	"cna-backend/internal/common/config"
	"cna-backend/internal/common/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// InitTracing installs the global tracer provider when tracing is enabled.
// Spans are written to w, or stdout when w is nil. With tracing disabled the
// global no-op provider stays in place.
func (o *Observability) InitTracing(ctx context.Context, app config.AppConfig, cfg config.ObservabilityConfig, w io.Writer, log logger.Logger) {
	if o == nil || !cfg.TracingEnabled {
		return
	}
	if w == nil {
		w = os.Stdout
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(app.Name),
		semconv.ServiceVersionKey.String(app.Version),
		attribute.String("deployment.environment", app.Environment),
	))
	if err != nil {
		log.Warn("otel resource init failed (continuing)", map[string]interface{}{"error": err})
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		log.Warn("otel exporter init failed, tracing disabled", map[string]interface{}{"error": err})
		return
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	o.tracerShutdown = tp.Shutdown

	log.Info("otel tracing initialized", map[string]interface{}{
		"service":     app.Name,
		"sampleRatio": cfg.SampleRatio,
	})
}
