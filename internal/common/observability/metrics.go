package observability

import (
	"context"
	"time"

	"cna-backend/internal/common/logger"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider  *metric.MeterProvider
	meter          otelmetric.Meter
	draftCounter   otelmetric.Int64Counter
	draftDuration  otelmetric.Float64Histogram
	tracerShutdown func(context.Context) error
}

// New builds the drafting meter on a Prometheus exporter attached to reg. A
// nil reg uses the default registerer. Exporter failures leave a no-op
// Observability.
func New(serviceName string, reg promclient.Registerer, log logger.Logger) *Observability {
	opts := []prometheus.Option{}
	if reg != nil {
		opts = append(opts, prometheus.WithRegisterer(reg))
	}
	exporter, err := prometheus.New(opts...)
	if err != nil {
		log.Warn("failed to create prometheus exporter", map[string]interface{}{"error": err})
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	draftCounter, _ := meter.Int64Counter(
		"drafts.processed",
		otelmetric.WithDescription("Number of draft requests processed"),
	)

	draftDuration, _ := meter.Float64Histogram(
		"drafts.duration",
		otelmetric.WithDescription("Draft request processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		draftCounter:  draftCounter,
		draftDuration: draftDuration,
	}
}

func (o *Observability) RecordDraftProcessed(ctx context.Context, outcome string) {
	if o == nil || o.draftCounter == nil {
		return
	}
	o.draftCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (o *Observability) RecordDraftDuration(ctx context.Context, duration time.Duration, outcome string) {
	if o == nil || o.draftDuration == nil {
		return
	}
	o.draftDuration.Record(ctx, float64(duration.Microseconds())/1000, otelmetric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (o *Observability) Shutdown() {
	if o == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.tracerShutdown != nil {
		_ = o.tracerShutdown(ctx)
	}
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
}
