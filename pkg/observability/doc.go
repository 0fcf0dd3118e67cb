// Package observability provides structured logging, Prometheus metrics, and OpenTelemetry tracing.
//
// # Overview
//
// Every analysis logs through logrus, records Prometheus metrics into a
// caller-owned registry, and wraps each phase in an OpenTelemetry span. None
// of these are required: a nil Metrics records nothing and the global no-op
// tracer provider is used until InitTracing installs a real one.
//
// # Structured Logging
//
// Create logger:
//
//	logger := observability.NewLogger("info", observability.FormatText, os.Stderr)
//	logger.WithField("project", name).Info("Starting cyclic dependency analysis")
//
// # Prometheus Metrics
//
// Build tools usually scrape the node_exporter textfile collector, so metrics
// are written to a file at the end of a run:
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	// ... run analysis ...
//	err := observability.WriteTextfile(registry, "/var/lib/node_exporter/pkgcycle.prom")
//
// # OpenTelemetry
//
// Initialize tracing:
//
//	tp, err := observability.InitTracing(ctx, observability.TracingConfig{
//		Enabled:     true,
//		Endpoint:    "otel-collector:4317",
//		ServiceName: "pkgcycle",
//		Insecure:    true,
//	}, logger)
//	defer observability.ShutdownTracing(ctx, tp, logger)
//
// # Related Packages
//
//   - pkg/config: Observability configuration
//   - pkg/analyzer: Emits the spans and metrics
package observability
