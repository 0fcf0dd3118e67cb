package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/platinummonkey/pkgcycle/pkg/analyzer"
	"github.com/platinummonkey/pkgcycle/pkg/config"
	"github.com/platinummonkey/pkgcycle/pkg/linter"
	"github.com/platinummonkey/pkgcycle/pkg/linter/rules"
)

// newCheckCommand creates the check command
func newCheckCommand(s *streams) *Command {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(s.errOut)

	var common commonFlags
	common.register(fs)
	var (
		format      = fs.String("format", "text", "Output format: text, json, github")
		metricsFile = fs.String("metrics-file", "", "Write Prometheus metrics to this file")
	)

	return &Command{
		Name:        "check",
		Description: "Check the project for cyclic package dependencies",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return failure(err)
			}
			if err := validateCheckFormat(*format); err != nil {
				return failure(err)
			}

			cfg, err := common.load(fs)
			if err != nil {
				return failure(err)
			}
			if *metricsFile != "" {
				cfg.Metrics.Textfile = *metricsFile
			}

			return runCheck(context.Background(), s, cfg, common.dir, *format)
		},
	}
}

func validateCheckFormat(format string) error {
	switch format {
	case "text", "json", "github":
		return nil
	default:
		return fmt.Errorf("unknown format %q (must be text, json or github)", format)
	}
}

func runCheck(ctx context.Context, s *streams, cfg *config.Config, dir, format string) error {
	sess, err := newSession(ctx, cfg, s.errOut)
	if err != nil {
		return failure(err)
	}
	defer sess.close(context.Background())

	rule := rules.NewNoCyclicPackageDependencyRule(cfg, sess.analyzerOptions()...)
	var report *analyzer.Report
	rule.OnReport(func(r *analyzer.Report) { report = r })

	registry := linter.NewRuleRegistry()
	registry.Register(rule)
	engine := linter.NewEngine(registry, sess.logger)

	result, runErr := engine.Run(ctx, &linter.Project{Name: cfg.ProjectName, BaseDir: dir})
	sess.writeMetrics()

	var enforcement *linter.EnforcementError
	if runErr != nil && !errors.As(runErr, &enforcement) {
		return failure(runErr)
	}

	if err := renderCheck(s.out, format, cfg, report, result); err != nil {
		return failure(err)
	}

	if enforcement != nil {
		return &ExitError{Code: ExitViolations, Err: runErr}
	}
	return nil
}

// checkOutput is the JSON document printed by check -format json
type checkOutput struct {
	Passed     bool               `json:"passed"`
	Report     *analyzer.Report   `json:"report"`
	Summary    linter.Summary     `json:"summary"`
	Violations []linter.Violation `json:"violations"`
}

func renderCheck(w io.Writer, format string, cfg *config.Config, report *analyzer.Report, result *linter.Result) error {
	if report == nil || result == nil {
		return nil
	}

	switch format {
	case "json":
		return writeJSON(w, checkOutput{
			Passed:     result.Summary.Errors == 0,
			Report:     report,
			Summary:    result.Summary,
			Violations: result.Violations,
		})
	case "github":
		level := "warning"
		if cfg.FailOnError {
			level = "error"
		}
		for i, c := range report.Cycles {
			fmt.Fprintf(w, "::%s title=Cyclic package dependency::Cycle %d: %s\n", level, i+1, c)
		}
		return nil
	default:
		writeReportText(w, report, cfg.FailOnError)
		return nil
	}
}

func writeReportText(w io.Writer, report *analyzer.Report, failOnError bool) {
	switch report.Status {
	case analyzer.StatusNoSource:
		fmt.Fprintf(w, "Source directory %s does not exist, nothing to check\n", report.SourceRoot)
	case analyzer.StatusPassed:
		fmt.Fprintf(w, "No cyclic dependencies found (%d files, %d packages)\n",
			report.FilesScanned, report.Packages)
	case analyzer.StatusCycles:
		fmt.Fprint(w, report.Message())
		outcome := "FAILED"
		if !failOnError {
			outcome = "WARNING"
		}
		fmt.Fprintf(w, "\n%s: %d cycle(s) in %d packages (%d files)\n",
			outcome, len(report.Cycles), report.Packages, report.FilesScanned)
	}
	if report.ReadFailures > 0 {
		fmt.Fprintf(w, "%d file(s) could not be read\n", report.ReadFailures)
	}
}
