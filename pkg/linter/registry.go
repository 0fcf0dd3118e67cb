package linter

import (
	"context"
	"sort"
)

// Rule interface that all enforcement rules must implement
type Rule interface {
	Name() string
	Description() string
	Severity() Severity
	// CacheID identifies the rule and its settings. Equal ids mean equal
	// results for unchanged inputs.
	CacheID() string
	Execute(ctx context.Context, project *Project) ([]Violation, error)
}

// RuleRegistry manages available rules
type RuleRegistry struct {
	rules map[string]Rule
}

// NewRuleRegistry creates an empty rule registry
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{
		rules: make(map[string]Rule),
	}
}

// Register adds a rule to the registry, replacing any rule with the same name
func (r *RuleRegistry) Register(rule Rule) {
	r.rules[rule.Name()] = rule
}

// GetRule retrieves a rule by name
func (r *RuleRegistry) GetRule(name string) (Rule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// GetAllRules returns all registered rules sorted by name
func (r *RuleRegistry) GetAllRules() []Rule {
	rules := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Name() < rules[j].Name()
	})
	return rules
}

// GetRulesBySeverity returns rules that report at the given severity
func (r *RuleRegistry) GetRulesBySeverity(severity Severity) []Rule {
	rules := make([]Rule, 0)
	for _, rule := range r.GetAllRules() {
		if rule.Severity() == severity {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Len returns the number of registered rules
func (r *RuleRegistry) Len() int {
	return len(r.rules)
}
