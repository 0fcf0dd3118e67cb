package cli

import (
	"context"
	"io"

	"github.com/platinummonkey/pkgcycle/pkg/analyzer"
	"github.com/platinummonkey/pkgcycle/pkg/config"
	"github.com/platinummonkey/pkgcycle/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// session holds the per-invocation logger, metrics and tracer
type session struct {
	cfg      *config.Config
	logger   *logrus.Logger
	registry *prometheus.Registry
	metrics  *observability.Metrics
	tp       *sdktrace.TracerProvider
}

func newSession(ctx context.Context, cfg *config.Config, errOut io.Writer) (*session, error) {
	logger, err := newLogger(cfg, errOut)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	s := &session{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		metrics:  observability.NewMetrics(registry),
	}

	tp, err := observability.InitTracing(ctx, cfg.ObservabilityTracing(Version), logger)
	if err != nil {
		return nil, err
	}
	s.tp = tp

	return s, nil
}

// analyzerOptions wires the session into an analyzer
func (s *session) analyzerOptions(extra ...analyzer.Option) []analyzer.Option {
	opts := []analyzer.Option{
		analyzer.WithLogger(s.logger),
		analyzer.WithMetrics(s.metrics),
	}
	return append(opts, extra...)
}

// writeMetrics exports the registry to the configured textfile, if any
func (s *session) writeMetrics() {
	path := s.cfg.Metrics.Textfile
	if path == "" {
		return
	}
	if err := observability.WriteTextfile(s.registry, path); err != nil {
		s.logger.WithError(err).Warnf("Failed to write metrics to %s", path)
		return
	}
	s.logger.Debugf("Metrics written to %s", path)
}

func (s *session) close(ctx context.Context) error {
	return observability.ShutdownTracing(ctx, s.tp, s.logger)
}
