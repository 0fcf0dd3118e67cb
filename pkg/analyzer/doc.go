// Package analyzer runs the cyclic package dependency analysis.
//
// An Analyzer loads a package graph from a Source, runs the bounded cycle
// detector over it and returns a Report. The default Source walks a source
// tree and parses import declarations:
//
//	cfg := config.Default()
//	a, err := analyzer.New(cfg, analyzer.WithLogger(logger))
//	if err != nil {
//		return err // *analyzer.ConfigError
//	}
//	report, err := a.Analyze(ctx, "src/main/java")
//	if err != nil {
//		return err
//	}
//	if report.HasCycles() {
//		fmt.Print(report.Message())
//	}
//
// A missing source root is not an error. The report has StatusNoSource.
package analyzer
