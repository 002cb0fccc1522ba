package observability

import (
	"context"
	stderrors "errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/taskstats/component"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := NewMetrics(mp.Meter("statistics"))
	if err != nil {
		t.Fatal(err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatal(err)
	}
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestMetrics_Record(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordIntent(ctx, "initial")
	m.RecordIntent(ctx, "initial")
	m.RecordResult(ctx, "in_flight")
	m.RecordResult(ctx, "success")
	m.RecordFetch(ctx, 0.25, nil)
	m.RecordFetch(ctx, 0.5, stderrors.New("db"))
	m.AddLoading(ctx, 1)
	m.AddLoading(ctx, 1)
	m.AddLoading(ctx, -1)

	data := collect(t, reader)

	intents := data[MetricIntents].(metricdata.Sum[int64])
	if len(intents.DataPoints) != 1 || intents.DataPoints[0].Value != 2 {
		t.Errorf("intents = %+v", intents.DataPoints)
	}

	results := data[MetricResults].(metricdata.Sum[int64])
	byStatus := map[string]int64{}
	for _, dp := range results.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key(AttrStatus))
		byStatus[v.AsString()] = dp.Value
	}
	if byStatus["in_flight"] != 1 || byStatus["success"] != 1 {
		t.Errorf("results by status = %v", byStatus)
	}

	fetch := data[MetricFetchDuration].(metricdata.Histogram[float64])
	var count uint64
	for _, dp := range fetch.DataPoints {
		count += dp.Count
	}
	if count != 2 || len(fetch.DataPoints) != 2 {
		t.Errorf("fetch histogram points=%d count=%d", len(fetch.DataPoints), count)
	}

	loading := data[MetricLoading].(metricdata.Sum[int64])
	if loading.IsMonotonic || loading.DataPoints[0].Value != 1 {
		t.Errorf("loading = %+v", loading)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordIntent(ctx, "initial")
	m.RecordResult(ctx, "success")
	m.RecordFetch(ctx, 1, nil)
	m.AddLoading(ctx, 1)
}

func TestEndSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())

	_, ok := tp.Tracer("test").Start(context.Background(), SpanFetch)
	EndSpan(ok, nil)
	_, failed := tp.Tracer("test").Start(context.Background(), SpanFetch)
	EndSpan(failed, stderrors.New("disk I/O error"))

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("spans = %d", len(spans))
	}
	if spans[0].Status.Code != codes.Ok {
		t.Errorf("first span status = %v", spans[0].Status)
	}
	if spans[1].Status.Code != codes.Error || len(spans[1].Events) == 0 {
		t.Errorf("second span status = %v events = %d", spans[1].Status, len(spans[1].Events))
	}
}

func TestSampler(t *testing.T) {
	if sampler(1).Description() != sdktrace.AlwaysSample().Description() {
		t.Error("rate 1 should always sample")
	}
	if sampler(0).Description() != sdktrace.NeverSample().Description() {
		t.Error("rate 0 should never sample")
	}
}

func TestNewResource(t *testing.T) {
	res := newResource(ServiceInfo{Name: "taskstats", Version: "1.2.3"})
	v, ok := res.Set().Value(attribute.Key(AttrServiceName))
	if !ok || v.AsString() != "taskstats" {
		t.Errorf("service.name = %v", v)
	}
	if _, ok := res.Set().Value(attribute.Key(AttrEnvironment)); ok {
		t.Error("empty environment should be omitted")
	}
}

func TestSetup_Disabled(t *testing.T) {
	p, err := Setup(context.Background(), ServiceInfo{Name: "taskstats"}, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if p.Tracer != nil || p.Meter != nil {
		t.Error("disabled setup should install nothing")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Error(err)
	}
}

func TestConfig(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" || cfg.SampleRate != 1 {
		t.Errorf("defaults = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	cfg.SampleRate = 2
	if err := cfg.Validate(); err == nil {
		t.Error("sample rate above 1 should fail")
	}
}

func TestServiceHealth(t *testing.T) {
	sh := NewServiceHealth("taskstats", "1.0.0")
	sh.AddComponent(component.Health{Name: "task-store", Status: component.StatusHealthy})
	if sh.Status != HealthStatusUp {
		t.Fatalf("status = %s", sh.Status)
	}
	sh.AddComponent(component.Health{Name: "task-store", Status: component.StatusDegraded})
	if sh.Status != HealthStatusDegraded {
		t.Fatalf("status = %s", sh.Status)
	}
	sh.AddComponent(component.Health{Name: "statistics", Status: component.StatusUnhealthy})
	sh.AddComponent(component.Health{Name: "ui-loop", Status: component.StatusDegraded})
	if sh.Status != HealthStatusDown || sh.Up() {
		t.Errorf("status = %s", sh.Status)
	}
	if len(sh.Components) != 4 {
		t.Errorf("components = %d", len(sh.Components))
	}
}
