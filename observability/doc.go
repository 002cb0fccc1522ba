// Package observability wires OpenTelemetry tracing and metrics for the
// service and defines the statistics pipeline's instruments.
//
//	providers, err := observability.Setup(ctx, observability.ServiceInfo{Name: "taskstats"}, cfg)
//	defer providers.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("statistics"))
//	metrics.RecordIntent(ctx, "initial")
//
// When telemetry is disabled the global otel providers stay no-ops, so
// instruments and spans can be used unconditionally.
package observability
