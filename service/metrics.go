package service

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter, mirroring the rest of the corpus's
// otel wiring: a fixed instrumentation name, instruments registered once
// behind a sync.Once, span/metric recording helpers called from the hot
// path.
var (
	tracer = otel.Tracer("lspcore.service")
	meter  = otel.Meter("lspcore.service")
)

var (
	filterTickTotal   metric.Int64Counter
	filterTypingError metric.Int64Counter
	frontendBytesIn   metric.Int64Counter
	frontendBytesOut  metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		filterTickTotal, err = meter.Int64Counter(
			"lspcore_filter_messages_total",
			metric.WithDescription("Messages processed by the Filter, by direction and outcome"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		filterTypingError, err = meter.Int64Counter(
			"lspcore_filter_typing_errors_total",
			metric.WithDescription("Inbound responses that failed to type against their outstanding request"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		frontendBytesIn, err = meter.Int64Counter(
			"lspcore_frontend_bytes_in_total",
			metric.WithDescription("Bytes decoded from the input stream"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		frontendBytesOut, err = meter.Int64Counter(
			"lspcore_frontend_bytes_out_total",
			metric.WithDescription("Bytes written to the output stream"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func startFilterSpan(ctx context.Context, direction string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Filter.tick",
		trace.WithAttributes(attribute.String("lspcore.direction", direction)),
	)
}

func recordFilterTick(ctx context.Context, direction, outcome string) {
	if err := initMetrics(); err != nil {
		return
	}
	filterTickTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("direction", direction),
		attribute.String("outcome", outcome),
	))
}

func recordTypingError(ctx context.Context, requestID string) {
	if err := initMetrics(); err != nil {
		return
	}
	filterTypingError.Add(ctx, 1, metric.WithAttributes(attribute.String("request_id", requestID)))
}

func recordBytesIn(ctx context.Context, n int) {
	if err := initMetrics(); err != nil {
		return
	}
	frontendBytesIn.Add(ctx, int64(n))
}

func recordBytesOut(ctx context.Context, n int) {
	if err := initMetrics(); err != nil {
		return
	}
	frontendBytesOut.Add(ctx, int64(n))
}
