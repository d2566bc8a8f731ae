package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/marcelsud/approval-relay/document"
	"github.com/marcelsud/approval-relay/webhooklog"
)

// Recorder provides OpenTelemetry delivery metrics exported in Prometheus format
type Recorder struct {
	meterProvider *sdkmetric.MeterProvider

	meter    metric.Meter
	attempts metric.Int64Counter
	duration metric.Float64Histogram
}

// NewRecorder creates a metrics recorder with a Prometheus exporter
func NewRecorder() (*Recorder, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"approval-relay",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	r := &Recorder{
		meterProvider: meterProvider,
		meter:         meter,
	}

	r.attempts, err = meter.Int64Counter(
		"webhook.delivery.attempts",
		metric.WithDescription("Number of webhook delivery attempts by document kind and outcome"),
		metric.WithUnit("{attempts}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating attempts counter: %w", err)
	}

	r.duration, err = meter.Float64Histogram(
		"webhook.delivery.duration",
		metric.WithDescription("Duration of webhook delivery attempts"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return r, nil
}

// RecordAttempt records one completed delivery attempt
func (r *Recorder) RecordAttempt(ctx context.Context, kind document.Kind, status webhooklog.Status, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("doctype", kind.String()),
		attribute.String("outcome", status.String()),
	)
	r.attempts.Add(ctx, 1, attrs)
	r.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// Handler returns the HTTP handler serving the Prometheus scrape endpoint
func (r *Recorder) Handler() http.Handler {
	return promhttp.Handler()
}

// Shutdown flushes and stops the meter provider
func (r *Recorder) Shutdown(ctx context.Context) error {
	return r.meterProvider.Shutdown(ctx)
}
