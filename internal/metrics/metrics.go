// Package metrics installs the global OTEL meter provider and serves the
// Prometheus scrape endpoint.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"
)

type Provider string

const (
	PrometheusProvider Provider = "prometheus"
	OtelCollector      Provider = "otel_collector"
)

// ProviderCfg selects one metrics backend.
type ProviderCfg struct {
	Provider Provider
	Endpoint string
	Headers  map[string]string
	Insecure bool
}

// Config collects the provider setup options.
type Config struct {
	ServiceName string
	Providers   []ProviderCfg
}

type OptionFn func(Config) Config

func WithServiceName(serviceName string) OptionFn {
	return func(cfg Config) Config {
		cfg.ServiceName = serviceName
		return cfg
	}
}

func WithProviderConfig(provider ProviderCfg) OptionFn {
	return func(cfg Config) Config {
		cfg.Providers = append(cfg.Providers, provider)
		return cfg
	}
}

// MetricProvider is the slice of the SDK meter provider callers need.
type MetricProvider interface {
	Meter(name string, options ...metric.MeterOption) metric.Meter
	Shutdown(ctx context.Context) error
}

// NewMetricProvider builds a meter provider with one reader per configured
// backend and installs it globally. Without backends it defaults to an OTLP
// gRPC exporter driven by the OTEL_* environment variables.
func NewMetricProvider(options ...OptionFn) MetricProvider {
	ctx := context.Background()

	var cfg Config
	for _, opt := range options {
		cfg = opt(cfg)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = os.Getenv("OTEL_SERVICE_NAME")
	}

	opts := []sdkmetric.Option{
		sdkmetric.WithResource(
			resource.NewSchemaless(semconv.ServiceNameKey.String(serviceName)),
		),
	}
	for _, reader := range buildReaders(ctx, cfg) {
		opts = append(opts, sdkmetric.WithReader(reader))
	}

	provider := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(provider)
	return provider
}

func buildReaders(ctx context.Context, cfg Config) []sdkmetric.Reader {
	var readers []sdkmetric.Reader

	for _, provider := range cfg.Providers {
		switch provider.Provider {
		case PrometheusProvider:
			exporter, err := promexporter.New()
			if err != nil {
				panic(err)
			}
			readers = append(readers, exporter)

		case OtelCollector:
			opts := []otlpmetricgrpc.Option{
				otlpmetricgrpc.WithEndpointURL(provider.Endpoint),
				otlpmetricgrpc.WithHeaders(provider.Headers),
			}
			if provider.Insecure {
				opts = append(opts, otlpmetricgrpc.WithInsecure())
			}
			exporter, err := otlpmetricgrpc.New(ctx, opts...)
			if err != nil {
				panic(err)
			}
			readers = append(readers, sdkmetric.NewPeriodicReader(exporter))
		}
	}

	if len(readers) == 0 {
		exporter, err := otlpmetricgrpc.New(ctx)
		if err != nil {
			panic(err)
		}
		readers = append(readers, sdkmetric.NewPeriodicReader(exporter))
	}

	return readers
}

// PromServerConfig configures the scrape endpoint.
type PromServerConfig struct {
	port string
}

type PromOptionFn func(PromServerConfig) PromServerConfig

func WithPort(port string) PromOptionFn {
	return func(cfg PromServerConfig) PromServerConfig {
		cfg.port = port
		return cfg
	}
}

// ServePrometheusMetrics blocks serving /metrics; run it in a goroutine.
func ServePrometheusMetrics(opt ...PromOptionFn) {
	cfg := PromServerConfig{port: "9090"}
	for _, o := range opt {
		cfg = o(cfg)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "metrics server stopped: %v\n", err)
	}
}
