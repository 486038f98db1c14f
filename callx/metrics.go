// Package callx provides client-side call metrics collection.
package callx

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// MetricsCollector holds OpenTelemetry instruments for outbound call
// monitoring. A nil collector is a valid no-op.
type MetricsCollector struct {
	callsTotal   metric.Int64Counter
	callDuration metric.Float64Histogram
	enabled      bool
}

// NewMetricsCollector creates a metrics collector on the given meter.
// If meter is nil, metrics collection is disabled.
//
// Metrics collected:
//   - call_client_requests_total: counter of calls by name and outcome
//   - call_client_request_duration_seconds: histogram of call duration
//
// Labels:
//   - call: logical call name (empty when unset)
//   - outcome: "ok" or the failure kind
//
// Concurrency:
//   - Safe for concurrent use after initialization
func NewMetricsCollector(meter metric.Meter) (*MetricsCollector, error) {
	if meter == nil {
		return &MetricsCollector{enabled: false}, nil
	}

	callsTotal, err := meter.Int64Counter(
		"call_client_requests_total",
		metric.WithDescription("Total number of outbound calls"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	callDuration, err := meter.Float64Histogram(
		"call_client_request_duration_seconds",
		metric.WithDescription("Outbound call duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.005, 0.01, 0.025, 0.05, 0.075, 0.1, 0.25, 0.5, 0.75, 1, 2.5, 5, 10,
		),
	)
	if err != nil {
		return nil, err
	}

	return &MetricsCollector{
		callsTotal:   callsTotal,
		callDuration: callDuration,
		enabled:      true,
	}, nil
}

// RecordCall records one finished call. Safe on a nil or disabled
// collector.
func (c *MetricsCollector) RecordCall(ctx context.Context, name, kind string, elapsed time.Duration) {
	if c == nil || !c.enabled {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("call", name),
		attribute.String("outcome", kind),
	}

	c.callsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))

	// Record duration with a trace_id exemplar attribute when a span is
	// active, mirroring server-side conventions.
	recordOpts := []metric.RecordOption{metric.WithAttributes(attrs...)}
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		recordOpts = append(recordOpts, metric.WithAttributes(
			attribute.String("trace_id", span.SpanContext().TraceID().String()),
		))
	}
	c.callDuration.Record(ctx, elapsed.Seconds(), recordOpts...)
}
