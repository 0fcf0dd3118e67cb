package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/platinummonkey/pkgcycle/pkg/config"
	"github.com/platinummonkey/pkgcycle/pkg/observability"
	"github.com/sirupsen/logrus"
)

// stringList is a repeatable string flag
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// commonFlags are shared by every command that analyzes a project
type commonFlags struct {
	dir         string
	configFile  string
	maxDepth    int
	excludes    stringList
	failOnError bool
	traversal   string
	verbose     bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.dir, "dir", ".", "Project base directory")
	fs.StringVar(&c.configFile, "config", "", "Path to config file (default: pkgcycle.yaml in -dir)")
	fs.IntVar(&c.maxDepth, "max-depth", 0, "Maximum cycle length to search for")
	fs.Var(&c.excludes, "exclude", "Package pattern to exclude (repeatable)")
	fs.BoolVar(&c.failOnError, "fail-on-error", true, "Exit with code 1 when cycles are found")
	fs.StringVar(&c.traversal, "traversal", "", "Traversal mode: shared or per-root")
	fs.BoolVar(&c.verbose, "verbose", false, "Verbose output")
}

// load builds the configuration: file, then environment, then the flags
// that were set explicitly
func (c *commonFlags) load(fs *flag.FlagSet) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.configFile != "" {
		cfg, err = config.Load(c.configFile)
	} else {
		cfg, err = config.LoadFromDir(c.dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-depth":
			cfg.MaxDepth = c.maxDepth
		case "exclude":
			cfg.ExcludePatterns = append([]string(nil), c.excludes...)
		case "fail-on-error":
			cfg.FailOnError = c.failOnError
		case "traversal":
			cfg.Traversal = c.traversal
		}
	})
	if c.verbose {
		cfg.Log.Level = "debug"
	}

	return cfg, nil
}

// newLogger creates the command logger from the log section of cfg
func newLogger(cfg *config.Config, out io.Writer) (*logrus.Logger, error) {
	if err := observability.ValidateFormat(cfg.Log.Format); err != nil {
		return nil, err
	}
	return observability.NewLogger(cfg.Log.Level, cfg.Log.Format, out), nil
}
