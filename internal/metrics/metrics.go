// Package metrics instruments the mutation engine with OpenTelemetry
// counters and histograms, exported to stdout (for ad-hoc runs) and
// optionally to Prometheus (for long-lived CLI invocations watching a
// directory).
package metrics

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("symbolmutator")
	meter  = otel.Meter("symbolmutator")
)

var (
	parseDuration    metric.Float64Histogram
	parseTotal       metric.Int64Counter
	parseErrors      metric.Int64Counter
	symbolsCollected metric.Int64Histogram
	mappingSize      metric.Int64Histogram
	transformLatency metric.Float64Histogram

	initOnce sync.Once
	initErr  error
)

// initMetrics lazily constructs every instrument exactly once; subsequent
// calls are no-ops that return the same error, matching the teacher's
// sync.Once-guarded initMetrics pattern.
func initMetrics() error {
	initOnce.Do(func() {
		var err error

		parseDuration, err = meter.Float64Histogram(
			"symbolmutator_parse_duration_seconds",
			metric.WithDescription("Duration of a single file parse"),
			metric.WithUnit("s"),
		)
		if err != nil {
			initErr = err
			return
		}

		parseTotal, err = meter.Int64Counter(
			"symbolmutator_parse_total",
			metric.WithDescription("Total number of file parse attempts"),
		)
		if err != nil {
			initErr = err
			return
		}

		parseErrors, err = meter.Int64Counter(
			"symbolmutator_parse_errors_total",
			metric.WithDescription("Total number of parse failures"),
		)
		if err != nil {
			initErr = err
			return
		}

		symbolsCollected, err = meter.Int64Histogram(
			"symbolmutator_symbols_collected",
			metric.WithDescription("Number of renameable symbols collected per file"),
		)
		if err != nil {
			initErr = err
			return
		}

		mappingSize, err = meter.Int64Histogram(
			"symbolmutator_mapping_size",
			metric.WithDescription("Cumulative mapping size after a collection pass"),
		)
		if err != nil {
			initErr = err
			return
		}

		transformLatency, err = meter.Float64Histogram(
			"symbolmutator_transform_duration_seconds",
			metric.WithDescription("Duration of a single file transform"),
			metric.WithUnit("s"),
		)
		if err != nil {
			initErr = err
			return
		}
	})
	return initErr
}

// RecordParse records a parse attempt's duration, symbol count, and
// outcome. Safe to call even if metrics initialization failed; it
// degrades to a no-op rather than propagating the error into the hot
// path.
func RecordParse(ctx context.Context, kind string, duration time.Duration, symbolCount int, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Bool("success", success),
	)
	parseDuration.Record(ctx, duration.Seconds(), attrs)
	parseTotal.Add(ctx, 1, attrs)

	if success {
		symbolsCollected.Record(ctx, int64(symbolCount), metric.WithAttributes(attribute.String("kind", kind)))
	} else {
		parseErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	}
}

// RecordMappingSize records the mapping's total entry count after a
// collection pass completes.
func RecordMappingSize(ctx context.Context, size int) {
	if err := initMetrics(); err != nil {
		return
	}
	mappingSize.Record(ctx, int64(size))
}

// RecordTransform records a Pass-2 transform's duration.
func RecordTransform(ctx context.Context, duration time.Duration) {
	if err := initMetrics(); err != nil {
		return
	}
	transformLatency.Record(ctx, duration.Seconds())
}

// StartSpan opens a tracing span for a named stage of the run (e.g.
// "collect", "transform"), returning the derived context and a func
// to end the span.
func StartSpan(ctx context.Context, name string) (context.Context, func()) {
	ctx, span := tracer.Start(ctx, name)
	return ctx, func() { span.End() }
}
