package linter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Mock rule for testing
type mockRule struct {
	name        string
	severity    Severity
	description string
	violations  []Violation
	err         error
	calls       int
	project     *Project
}

func (m *mockRule) Name() string {
	return m.name
}

func (m *mockRule) Severity() Severity {
	return m.severity
}

func (m *mockRule) Description() string {
	return m.description
}

func (m *mockRule) CacheID() string {
	return "mock:" + m.name
}

func (m *mockRule) Execute(ctx context.Context, project *Project) ([]Violation, error) {
	m.calls++
	m.project = project
	return m.violations, m.err
}

func TestNewRuleRegistry(t *testing.T) {
	registry := NewRuleRegistry()

	assert.NotNil(t, registry)
	assert.NotNil(t, registry.rules)
	assert.Equal(t, 0, registry.Len())
}

func TestRuleRegistry_Register(t *testing.T) {
	registry := NewRuleRegistry()

	rule1 := &mockRule{
		name:        "test-rule-1",
		severity:    SeverityError,
		description: "Test rule 1",
	}

	rule2 := &mockRule{
		name:        "test-rule-2",
		severity:    SeverityWarning,
		description: "Test rule 2",
	}

	registry.Register(rule1)
	registry.Register(rule2)

	assert.Equal(t, 2, registry.Len())

	retrievedRule1, ok := registry.GetRule("test-rule-1")
	assert.True(t, ok)
	assert.Equal(t, rule1, retrievedRule1)

	retrievedRule2, ok := registry.GetRule("test-rule-2")
	assert.True(t, ok)
	assert.Equal(t, rule2, retrievedRule2)
}

func TestRuleRegistry_GetRule(t *testing.T) {
	registry := NewRuleRegistry()
	registry.Register(&mockRule{name: "test-rule", severity: SeverityError})

	tests := []struct {
		name      string
		ruleName  string
		wantFound bool
	}{
		{
			name:      "existing rule",
			ruleName:  "test-rule",
			wantFound: true,
		},
		{
			name:      "non-existent rule",
			ruleName:  "non-existent",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retrievedRule, found := registry.GetRule(tt.ruleName)
			assert.Equal(t, tt.wantFound, found)

			if tt.wantFound {
				assert.Equal(t, tt.ruleName, retrievedRule.Name())
			} else {
				assert.Nil(t, retrievedRule)
			}
		})
	}
}

func TestRuleRegistry_GetAllRulesSorted(t *testing.T) {
	registry := NewRuleRegistry()

	rules := registry.GetAllRules()
	assert.NotNil(t, rules)
	assert.Empty(t, rules)

	registry.Register(&mockRule{name: "rule-c", severity: SeverityInfo})
	registry.Register(&mockRule{name: "rule-a", severity: SeverityError})
	registry.Register(&mockRule{name: "rule-b", severity: SeverityWarning})

	var names []string
	for _, rule := range registry.GetAllRules() {
		names = append(names, rule.Name())
	}
	assert.Equal(t, []string{"rule-a", "rule-b", "rule-c"}, names)
}

func TestRuleRegistry_GetRulesBySeverity(t *testing.T) {
	registry := NewRuleRegistry()
	registry.Register(&mockRule{name: "err-1", severity: SeverityError})
	registry.Register(&mockRule{name: "err-2", severity: SeverityError})
	registry.Register(&mockRule{name: "warn-1", severity: SeverityWarning})

	assert.Len(t, registry.GetRulesBySeverity(SeverityError), 2)
	assert.Len(t, registry.GetRulesBySeverity(SeverityWarning), 1)
	assert.Empty(t, registry.GetRulesBySeverity(SeverityInfo))
}

func TestRuleRegistry_RegisterMultipleSameName(t *testing.T) {
	registry := NewRuleRegistry()

	registry.Register(&mockRule{
		name:        "duplicate-rule",
		severity:    SeverityError,
		description: "First version",
	})
	registry.Register(&mockRule{
		name:        "duplicate-rule",
		severity:    SeverityWarning,
		description: "Second version",
	})

	// Should overwrite first registration
	retrievedRule, ok := registry.GetRule("duplicate-rule")
	assert.True(t, ok)
	assert.Equal(t, "Second version", retrievedRule.Description())
	assert.Equal(t, SeverityWarning, retrievedRule.Severity())
	assert.Equal(t, 1, registry.Len())
}
