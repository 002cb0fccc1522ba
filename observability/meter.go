package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Instrument names.
const (
	MetricIntents       = "statistics.intents"
	MetricResults       = "statistics.results"
	MetricFetchDuration = "statistics.fetch.duration"
	MetricLoading       = "statistics.loading"
)

// InitMeter installs a periodic OTLP HTTP meter provider as the global
// provider. Shut it down on exit.
func InitMeter(ctx context.Context, svc ServiceInfo, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}
	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(newResource(svc)),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the statistics pipeline instruments. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	intents       metric.Int64Counter
	results       metric.Int64Counter
	fetchDuration metric.Float64Histogram
	loading       metric.Int64UpDownCounter
}

// NewMetrics creates the pipeline instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	intents, err := meter.Int64Counter(MetricIntents,
		metric.WithDescription("Intents submitted to the statistics pipeline"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricIntents, err)
	}
	results, err := meter.Int64Counter(MetricResults,
		metric.WithDescription("Results folded into view state, by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricResults, err)
	}
	fetchDuration, err := meter.Float64Histogram(MetricFetchDuration,
		metric.WithDescription("Duration of task record fetches"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricFetchDuration, err)
	}
	loading, err := meter.Int64UpDownCounter(MetricLoading,
		metric.WithDescription("Statistics loads in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricLoading, err)
	}
	return &Metrics{
		intents:       intents,
		results:       results,
		fetchDuration: fetchDuration,
		loading:       loading,
	}, nil
}

// RecordIntent counts one submitted intent.
func (m *Metrics) RecordIntent(ctx context.Context, intent string) {
	if m == nil {
		return
	}
	m.intents.Add(ctx, 1, metric.WithAttributes(attribute.String("intent", intent)))
}

// RecordResult counts one folded result.
func (m *Metrics) RecordResult(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.results.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStatus, status)))
}

// RecordFetch records a fetch duration in seconds, tagged ok or error.
func (m *Metrics) RecordFetch(ctx context.Context, seconds float64, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.fetchDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// AddLoading moves the in-flight load gauge by delta.
func (m *Metrics) AddLoading(ctx context.Context, delta int64) {
	if m == nil {
		return
	}
	m.loading.Add(ctx, delta)
}
