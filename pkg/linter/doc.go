// Package linter hosts project-level enforcement rules.
//
// Rules are registered in a RuleRegistry and run by an Engine against a
// Project. Each rule returns violations with a severity. The engine logs
// warnings and turns error-level violations into an *EnforcementError, so a
// build fails exactly when some rule reported an error.
//
//	registry := linter.NewRuleRegistry()
//	rules.RegisterDefaultRules(registry, cfg)
//
//	engine := linter.NewEngine(registry, logger)
//	result, err := engine.Run(ctx, &linter.Project{Name: "billing", BaseDir: "."})
//	var enforcement *linter.EnforcementError
//	if errors.As(err, &enforcement) {
//		// fail the build
//	}
//	fmt.Printf("%d errors, %d warnings\n", result.Summary.Errors, result.Summary.Warnings)
//
// # Related Packages
//
//   - pkg/linter/rules: built-in rules
//   - pkg/analyzer: the analysis behind the cyclic dependency rule
package linter
