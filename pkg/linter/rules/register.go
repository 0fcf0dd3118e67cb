package rules

import (
	"github.com/platinummonkey/pkgcycle/pkg/analyzer"
	"github.com/platinummonkey/pkgcycle/pkg/config"
	"github.com/platinummonkey/pkgcycle/pkg/linter"
)

// Registry interface for registering rules
type Registry interface {
	Register(rule linter.Rule)
}

// DefaultRules returns all built-in rules configured from cfg
func DefaultRules(cfg *config.Config, opts ...analyzer.Option) []linter.Rule {
	return []linter.Rule{
		NewNoCyclicPackageDependencyRule(cfg, opts...),
	}
}

// RegisterDefaultRules registers all built-in rules
func RegisterDefaultRules(registry Registry, cfg *config.Config, opts ...analyzer.Option) {
	for _, rule := range DefaultRules(cfg, opts...) {
		registry.Register(rule)
	}
}
