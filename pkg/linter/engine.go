package linter

import (
	"context"
	"fmt"
	"strings"

	"github.com/platinummonkey/pkgcycle/pkg/observability"
	"github.com/sirupsen/logrus"
)

// Engine runs every registered rule against a project
type Engine struct {
	registry *RuleRegistry
	logger   logrus.FieldLogger
}

// NewEngine creates an engine. A nil registry starts empty and a nil logger
// discards output.
func NewEngine(registry *RuleRegistry, logger logrus.FieldLogger) *Engine {
	if registry == nil {
		registry = NewRuleRegistry()
	}
	if logger == nil {
		logger = observability.Discard()
	}

	return &Engine{
		registry: registry,
		logger:   logger,
	}
}

// Registry returns the engine's rule registry
func (e *Engine) Registry() *RuleRegistry {
	return e.registry
}

// Run executes all rules in name order. Warning violations are logged.
// When any violation is an error, Run returns the result together with an
// *EnforcementError. A rule that fails to execute stops the run.
func (e *Engine) Run(ctx context.Context, project *Project) (*Result, error) {
	if project.Logger == nil {
		p := *project
		p.Logger = e.logger
		project = &p
	}

	result := &Result{
		Project:    project.Name,
		Violations: make([]Violation, 0),
	}

	for _, rule := range e.registry.GetAllRules() {
		violations, err := rule.Execute(ctx, project)
		if err != nil {
			return result, fmt.Errorf("rule %s failed: %w", rule.Name(), err)
		}
		result.Summary.Rules++
		result.Violations = append(result.Violations, violations...)
	}

	result.Summary = summarize(result.Summary.Rules, result.Violations)

	var errs []string
	for _, v := range result.Violations {
		switch v.Severity {
		case SeverityError:
			errs = append(errs, v.Message)
		case SeverityWarning:
			e.logger.WithFields(logrus.Fields{
				"rule":    v.Rule,
				"project": project.Name,
			}).Warn(v.Message)
		}
	}

	if len(errs) > 0 {
		return result, &EnforcementError{Messages: errs}
	}
	return result, nil
}

func summarize(rules int, violations []Violation) Summary {
	summary := Summary{
		Rules:           rules,
		TotalViolations: len(violations),
	}
	for _, v := range violations {
		switch v.Severity {
		case SeverityError:
			summary.Errors++
		case SeverityWarning:
			summary.Warnings++
		case SeverityInfo:
			summary.Infos++
		}
	}
	return summary
}

// Project is the unit a rule is enforced on
type Project struct {
	Name    string
	BaseDir string
	// Logger is handed to rules; Run fills it with the engine logger when nil
	Logger logrus.FieldLogger
}

// Result contains the outcome of one engine run
type Result struct {
	Project    string      `json:"project"`
	Violations []Violation `json:"violations"`
	Summary    Summary     `json:"summary"`
}

// Violation represents one rule violation
type Violation struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Severity indicates how serious a violation is
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Summary provides an overview of a run
type Summary struct {
	Rules           int `json:"rules"`
	TotalViolations int `json:"totalViolations"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
}

// EnforcementError is returned when at least one rule reported an error
type EnforcementError struct {
	Messages []string
}

func (e *EnforcementError) Error() string {
	return strings.TrimRight(strings.Join(e.Messages, "\n"), "\n")
}
