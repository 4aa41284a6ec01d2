package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	otelprometheus "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Provider wraps the OpenTelemetry SDK meter provider installed as the
// global provider, plus an optional HTTP server exposing it to
// Prometheus.
type Provider struct {
	meterProvider *sdkmetric.MeterProvider
	server        *http.Server
}

// NewStdout installs a meter provider that periodically prints metrics
// to stdout, for `--verbose-metrics` runs with no scraper attached.
func NewStdout(ctx context.Context) (*Provider, error) {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return nil, fmt.Errorf("create stdout metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
	)
	otel.SetMeterProvider(mp)
	return &Provider{meterProvider: mp}, nil
}

// NewPrometheus installs a meter provider backed by a Prometheus
// collector and serves it at addr (e.g. ":9090") under /metrics. The
// returned Provider's Shutdown stops both the SDK provider and the
// HTTP listener.
func NewPrometheus(addr string) (*Provider, error) {
	exporter, err := otelprometheus.New()
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(mp)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		_ = server.ListenAndServe()
	}()

	return &Provider{meterProvider: mp, server: server}, nil
}

// Shutdown flushes and stops the provider and any running HTTP server.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("shut down metrics server: %w", err)
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("shut down meter provider: %w", err)
		}
	}
	return nil
}
