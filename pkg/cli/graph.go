package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/platinummonkey/pkgcycle/pkg/analyzer"
	"github.com/platinummonkey/pkgcycle/pkg/dependencies"
)

// graphOptions selects what the graph command prints
type graphOptions struct {
	format     string
	focus      string
	direction  string
	transitive bool
	depth      int
}

// newGraphCommand creates the graph command
func newGraphCommand(s *streams) *Command {
	fs := flag.NewFlagSet("graph", flag.ContinueOnError)
	fs.SetOutput(s.errOut)

	var common commonFlags
	common.register(fs)
	var opts graphOptions
	fs.StringVar(&opts.format, "format", "text", "Output format: text, dot, cytoscape")
	fs.StringVar(&opts.focus, "package", "", "Only show this package and its neighbourhood")
	fs.StringVar(&opts.direction, "direction", "dependencies", "With -package: dependencies, dependents or both")
	fs.BoolVar(&opts.transitive, "transitive", false, "With -package: follow dependencies past the first hop")
	fs.IntVar(&opts.depth, "depth", 0, "With -transitive: maximum hops (0 = unlimited)")

	return &Command{
		Name:        "graph",
		Description: "Print the filtered package dependency graph",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return failure(err)
			}

			cfg, err := common.load(fs)
			if err != nil {
				return failure(err)
			}

			ctx := context.Background()
			sess, err := newSession(ctx, cfg, s.errOut)
			if err != nil {
				return failure(err)
			}
			defer sess.close(context.Background())

			a, err := analyzer.New(cfg, sess.analyzerOptions()...)
			if err != nil {
				return failure(err)
			}
			report, err := a.Analyze(ctx, cfg.ResolveSourceRoot(common.dir))
			if err != nil {
				return failure(err)
			}

			return renderGraph(s, report, opts)
		},
	}
}

func renderGraph(s *streams, report *analyzer.Report, opts graphOptions) error {
	direction, err := dependencies.ParseDirection(opts.direction)
	if err != nil {
		return failure(err)
	}
	view := dependencies.View{
		Focus:      opts.focus,
		Direction:  direction,
		Transitive: opts.transitive,
		MaxDepth:   opts.depth,
	}

	switch opts.format {
	case "text":
		fmt.Fprint(s.out, dependencies.ToText(report.Graph, report.Cycles, view))
	case "dot":
		fmt.Fprint(s.out, dependencies.ToDOT(report.Graph, report.Cycles, view))
	case "cytoscape":
		if err := writeJSON(s.out, dependencies.ToCytoscape(report.Graph, report.Cycles, view)); err != nil {
			return failure(err)
		}
	default:
		return failure(fmt.Errorf("unknown format %q (must be text, dot or cytoscape)", opts.format))
	}
	return nil
}
