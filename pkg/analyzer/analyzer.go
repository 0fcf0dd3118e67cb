package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/platinummonkey/pkgcycle/pkg/config"
	"github.com/platinummonkey/pkgcycle/pkg/dependencies"
	"github.com/platinummonkey/pkgcycle/pkg/exclusion"
	"github.com/platinummonkey/pkgcycle/pkg/imports"
	"github.com/platinummonkey/pkgcycle/pkg/observability"
	"github.com/platinummonkey/pkgcycle/pkg/scanner"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Status is the outcome of one analysis
type Status string

const (
	StatusPassed   Status = "passed"
	StatusCycles   Status = "cycles"
	StatusNoSource Status = "no-source"
)

// Report is the result of one analysis
type Report struct {
	RunID        string               `json:"runId"`
	Project      string               `json:"project"`
	SourceRoot   string               `json:"sourceRoot"`
	Status       Status               `json:"status"`
	FilesScanned int                  `json:"filesScanned"`
	FilesSkipped int                  `json:"filesSkipped"`
	ReadFailures int                  `json:"readFailures"`
	Packages     int                  `json:"packages"`
	Edges        int                  `json:"edges"`
	Cycles       []dependencies.Cycle `json:"cycles"`
	Duration     time.Duration        `json:"duration"`

	Graph *dependencies.Graph `json:"-"`
}

// HasCycles reports whether at least one cycle was found
func (r *Report) HasCycles() bool {
	return len(r.Cycles) > 0
}

// Message formats the cycles the way violations report them. It is empty
// when there are none.
func (r *Report) Message() string {
	if !r.HasCycles() {
		return ""
	}
	var b strings.Builder
	b.WriteString("Cyclic dependencies found:\n")
	for i, c := range r.Cycles {
		fmt.Fprintf(&b, "Cycle %d: %s\n", i+1, c)
	}
	return b.String()
}

// Analyzer runs cycle detection with one configuration
type Analyzer struct {
	cfg      *config.Config
	filter   *exclusion.Filter
	detector *dependencies.Detector
	source   Source
	cache    *imports.Cache
	logger   logrus.FieldLogger
	metrics  *observability.Metrics
	tracer   trace.Tracer
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithMetrics records analysis metrics
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Analyzer) {
		a.metrics = m
	}
}

// WithCache lets the default source reuse parsed imports across runs
func WithCache(cache *imports.Cache) Option {
	return func(a *Analyzer) {
		a.cache = cache
	}
}

// WithSource replaces the default import-parsing source
func WithSource(src Source) Option {
	return func(a *Analyzer) {
		a.source = src
	}
}

// WithTracer sets the tracer for analysis spans
func WithTracer(tracer trace.Tracer) Option {
	return func(a *Analyzer) {
		a.tracer = tracer
	}
}

// New validates cfg and compiles its exclude patterns.
// Any problem is returned as a *ConfigError.
func New(cfg *config.Config, opts ...Option) (*Analyzer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}

	filter, err := exclusion.New(cfg.ExcludePatterns)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	a := &Analyzer{
		cfg:      cfg,
		filter:   filter,
		detector: dependencies.NewDetector(cfg.MaxDepth, cfg.TraversalMode()),
		logger:   observability.Discard(),
		tracer:   observability.Tracer(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.source == nil {
		a.source = NewTextSource(cfg.FileSuffix, filter, a.cache, a.metrics, a.logger)
	}

	return a, nil
}

// Config returns the configuration the analyzer was built with
func (a *Analyzer) Config() *config.Config {
	return a.cfg
}

// Filter returns the compiled exclusion filter
func (a *Analyzer) Filter() *exclusion.Filter {
	return a.filter
}

// Analyze loads the graph under sourceRoot and detects cycles in it
func (a *Analyzer) Analyze(ctx context.Context, sourceRoot string) (*Report, error) {
	start := time.Now()
	report := &Report{
		RunID:      uuid.NewString(),
		Project:    a.cfg.ProjectName,
		SourceRoot: sourceRoot,
		Cycles:     []dependencies.Cycle{},
	}

	ctx, span := a.tracer.Start(ctx, "pkgcycle.analyze", trace.WithAttributes(
		attribute.String("pkgcycle.run_id", report.RunID),
		attribute.String("pkgcycle.project", report.Project),
		attribute.String("pkgcycle.source_root", sourceRoot),
		attribute.Int("pkgcycle.max_depth", a.detector.MaxDepth()),
		attribute.String("pkgcycle.traversal", string(a.detector.Mode())),
	))
	defer span.End()

	logger := observability.WithTraceContext(ctx, a.logger.WithFields(logrus.Fields{
		"run_id":  report.RunID,
		"project": report.Project,
	}))
	logger.Infof("Starting cyclic dependency analysis for: %s", report.Project)

	graph, stats, err := a.source.Load(ctx, sourceRoot)
	if err != nil {
		if errors.Is(err, scanner.ErrSourceRootMissing) {
			logger.Infof("Source directory not found: %s", sourceRoot)
			report.Status = StatusNoSource
			report.Graph = dependencies.NewGraph()
			report.Duration = time.Since(start)
			a.metrics.RecordResult(string(report.Status), 0)
			span.SetAttributes(attribute.String("pkgcycle.status", string(report.Status)))
			return report, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.metrics.RecordResult("error", 0)
		return nil, fmt.Errorf("failed to load dependency graph from %s: %w", sourceRoot, err)
	}

	report.FilesScanned = stats.FilesScanned
	report.FilesSkipped = stats.FilesSkipped
	report.ReadFailures = stats.ReadFailures
	report.Graph = graph
	report.Packages = graph.Len()
	report.Edges = graph.EdgeCount()
	a.metrics.RecordScan(stats.FilesScanned, stats.FilesSkipped, stats.ReadFailures)
	a.metrics.RecordGraph(report.Packages, report.Edges)

	_, detectSpan := a.tracer.Start(ctx, "pkgcycle.detect")
	detectStart := time.Now()
	report.Cycles = a.detector.Detect(graph)
	a.metrics.RecordPhase("detect", time.Since(detectStart))
	detectSpan.SetAttributes(attribute.Int("pkgcycle.cycles", len(report.Cycles)))
	detectSpan.End()

	if report.HasCycles() {
		report.Status = StatusCycles
	} else {
		report.Status = StatusPassed
		logger.Info("No cyclic dependencies found")
	}
	report.Duration = time.Since(start)

	a.metrics.RecordResult(string(report.Status), len(report.Cycles))
	span.SetAttributes(
		attribute.String("pkgcycle.status", string(report.Status)),
		attribute.Int("pkgcycle.cycles", len(report.Cycles)),
	)
	logger.WithFields(logrus.Fields{
		"files":    report.FilesScanned,
		"packages": report.Packages,
		"cycles":   len(report.Cycles),
		"duration": report.Duration,
	}).Debug("Analysis complete")

	return report, nil
}
