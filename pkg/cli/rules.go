package cli

import (
	"flag"
	"fmt"

	"github.com/platinummonkey/pkgcycle/pkg/linter"
	"github.com/platinummonkey/pkgcycle/pkg/linter/rules"
)

// newRulesCommand creates the rules command
func newRulesCommand(s *streams) *Command {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)
	fs.SetOutput(s.errOut)

	var common commonFlags
	common.register(fs)

	return &Command{
		Name:        "rules",
		Description: "List available rules",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return failure(err)
			}
			cfg, err := common.load(fs)
			if err != nil {
				return failure(err)
			}

			registry := linter.NewRuleRegistry()
			rules.RegisterDefaultRules(registry, cfg)

			allRules := registry.GetAllRules()
			fmt.Fprintf(s.out, "Available rules (%d):\n\n", len(allRules))
			for _, rule := range allRules {
				fmt.Fprintf(s.out, "  - %-30s [%s]\n    %s\n    cache id: %s\n",
					rule.Name(),
					rule.Severity(),
					rule.Description(),
					rule.CacheID(),
				)
			}
			return nil
		},
	}
}
