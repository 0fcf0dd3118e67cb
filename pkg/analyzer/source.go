package analyzer

import (
	"context"
	"time"

	"github.com/platinummonkey/pkgcycle/pkg/dependencies"
	"github.com/platinummonkey/pkgcycle/pkg/imports"
	"github.com/platinummonkey/pkgcycle/pkg/observability"
	"github.com/platinummonkey/pkgcycle/pkg/scanner"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Stats counts what a Source did with the files it saw
type Stats struct {
	FilesScanned int
	FilesSkipped int
	ReadFailures int
}

// Source loads the package dependency graph rooted at a directory.
// Implementations report a missing root with scanner.ErrSourceRootMissing.
type Source interface {
	Load(ctx context.Context, root string) (*dependencies.Graph, Stats, error)
}

// TextSource builds the graph from import declarations in source files
type TextSource struct {
	suffix  string
	filter  imports.Excluder
	cache   *imports.Cache
	metrics *observability.Metrics
	logger  logrus.FieldLogger
	tracer  trace.Tracer
}

// NewTextSource creates a TextSource. filter, cache and metrics may be nil.
func NewTextSource(suffix string, filter imports.Excluder, cache *imports.Cache, metrics *observability.Metrics, logger logrus.FieldLogger) *TextSource {
	if logger == nil {
		logger = observability.Discard()
	}
	return &TextSource{
		suffix:  suffix,
		filter:  filter,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		tracer:  observability.Tracer(),
	}
}

// Load scans root, extracts every file's imports and builds the graph.
// Unreadable files and directories are logged and counted, never fatal.
func (s *TextSource) Load(ctx context.Context, root string) (*dependencies.Graph, Stats, error) {
	var stats Stats

	_, span := s.tracer.Start(ctx, "pkgcycle.scan")
	start := time.Now()
	sc := scanner.New(
		scanner.WithSuffix(s.suffix),
		scanner.WithSkipHandler(func(path string, err error) {
			stats.ReadFailures++
			s.logger.WithError(err).Debugf("Skipping unreadable entry: %s", path)
		}),
	)
	files, err := sc.Scan(root)
	s.metrics.RecordPhase("scan", time.Since(start))
	span.SetAttributes(attribute.Int("pkgcycle.files", len(files)))
	span.End()
	if err != nil {
		return nil, stats, err
	}

	_, span = s.tracer.Start(ctx, "pkgcycle.extract")
	start = time.Now()
	opts := []imports.Option{imports.WithCacheObserver(s.metrics.RecordCacheLookup)}
	if s.cache != nil {
		opts = append(opts, imports.WithCache(s.cache))
	}
	extractor := imports.NewExtractor(root, s.filter, opts...)

	deps := make([]dependencies.FileDependencies, 0, len(files))
	for _, path := range files {
		stats.FilesScanned++
		fi := extractor.Extract(path)
		switch {
		case fi.Err != nil:
			stats.ReadFailures++
			s.logger.WithError(fi.Err).Debugf("Failed to read source file: %s", path)
		case fi.Skipped:
			stats.FilesSkipped++
		default:
			deps = append(deps, dependencies.FileDependencies{Package: fi.Package, Imports: fi.Imports})
		}
	}
	s.metrics.RecordPhase("extract", time.Since(start))
	span.SetAttributes(
		attribute.Int("pkgcycle.files_skipped", stats.FilesSkipped),
		attribute.Int("pkgcycle.read_failures", stats.ReadFailures),
	)
	span.End()

	_, span = s.tracer.Start(ctx, "pkgcycle.build")
	start = time.Now()
	graph := dependencies.BuildGraph(deps)
	s.metrics.RecordPhase("build", time.Since(start))
	span.SetAttributes(
		attribute.Int("pkgcycle.packages", graph.Len()),
		attribute.Int("pkgcycle.edges", graph.EdgeCount()),
	)
	span.End()

	return graph, stats, nil
}
