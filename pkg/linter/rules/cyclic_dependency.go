package rules

import (
	"context"

	"github.com/platinummonkey/pkgcycle/pkg/analyzer"
	"github.com/platinummonkey/pkgcycle/pkg/config"
	"github.com/platinummonkey/pkgcycle/pkg/linter"
)

// NoCyclicPackageDependencyRuleName is the registry name of the cycle rule
const NoCyclicPackageDependencyRuleName = "no-cyclic-package-dependency"

// NoCyclicPackageDependencyRule fails or warns when packages under the
// project's source root depend on each other in a cycle
type NoCyclicPackageDependencyRule struct {
	BaseRule
	cfg      *config.Config
	opts     []analyzer.Option
	onReport func(*analyzer.Report)
}

// NewNoCyclicPackageDependencyRule creates the rule. Its severity is error
// when cfg.FailOnError is set and warning otherwise.
func NewNoCyclicPackageDependencyRule(cfg *config.Config, opts ...analyzer.Option) *NoCyclicPackageDependencyRule {
	if cfg == nil {
		cfg = config.Default()
	}
	severity := linter.SeverityWarning
	if cfg.FailOnError {
		severity = linter.SeverityError
	}

	return &NoCyclicPackageDependencyRule{
		BaseRule: BaseRule{
			RuleName:        NoCyclicPackageDependencyRuleName,
			RuleSeverity:    severity,
			RuleDescription: "Packages must not depend on each other cyclically",
		},
		cfg:  cfg,
		opts: opts,
	}
}

// OnReport registers a callback that receives every analysis report
func (r *NoCyclicPackageDependencyRule) OnReport(fn func(*analyzer.Report)) {
	r.onReport = fn
}

// CacheID identifies the rule settings
func (r *NoCyclicPackageDependencyRule) CacheID() string {
	return r.cfg.CacheID()
}

// SourceDir resolves the configured source root against the project base directory
func (r *NoCyclicPackageDependencyRule) SourceDir(project *linter.Project) string {
	return r.cfg.ResolveSourceRoot(project.BaseDir)
}

// Execute analyzes the project and reports all cycles as one violation
func (r *NoCyclicPackageDependencyRule) Execute(ctx context.Context, project *linter.Project) ([]linter.Violation, error) {
	cfg := r.cfg
	if project.Name != "" && project.Name != cfg.ProjectName {
		cfg = cfg.Clone()
		cfg.ProjectName = project.Name
	}

	// options given to the rule take precedence over the project logger
	opts := make([]analyzer.Option, 0, len(r.opts)+1)
	if project.Logger != nil {
		opts = append(opts, analyzer.WithLogger(project.Logger))
	}
	opts = append(opts, r.opts...)

	a, err := analyzer.New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	report, err := a.Analyze(ctx, r.SourceDir(project))
	if err != nil {
		return nil, err
	}
	if r.onReport != nil {
		r.onReport(report)
	}

	if !report.HasCycles() {
		return nil, nil
	}

	return []linter.Violation{{
		Rule:     r.Name(),
		Severity: r.Severity(),
		Message:  report.Message(),
	}}, nil
}
