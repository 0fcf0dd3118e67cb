package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Version is reported in traces and by the version command
var Version = "dev"

// Exit codes
const (
	ExitOK         = 0
	ExitViolations = 1
	ExitFailure    = 2
)

// ExitError carries the process exit code of a failed command
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

func failure(err error) error {
	return &ExitError{Code: ExitFailure, Err: err}
}

// Command represents a CLI command
type Command struct {
	Name        string
	Description string
	Run         func(args []string) error
	Subcommands map[string]*Command
	Flags       *flag.FlagSet

	out io.Writer
}

// streams are the writers commands print to. Reports go to out, logs to errOut.
type streams struct {
	out    io.Writer
	errOut io.Writer
}

// NewRootCommand creates the root command writing to stdout and stderr
func NewRootCommand() *Command {
	return newRootCommand(os.Stdout, os.Stderr)
}

func newRootCommand(out, errOut io.Writer) *Command {
	s := &streams{out: out, errOut: errOut}

	root := &Command{
		Name:        "pkgcycle",
		Description: "pkgcycle - cyclic package dependency checker",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("pkgcycle", flag.ContinueOnError),
		out:         out,
	}

	// Add subcommands
	root.Subcommands["check"] = newCheckCommand(s)
	root.Subcommands["graph"] = newGraphCommand(s)
	root.Subcommands["watch"] = newWatchCommand(s)
	root.Subcommands["rules"] = newRulesCommand(s)
	root.Subcommands["version"] = newVersionCommand(s)

	return root
}

// Execute runs the command with the process arguments
func (c *Command) Execute() error {
	return c.ExecuteArgs(os.Args[1:])
}

// ExecuteArgs runs the command with args, which exclude the program name
func (c *Command) ExecuteArgs(args []string) error {
	if len(args) == 0 {
		return c.usage()
	}

	// Check for help flag
	if h := strings.ToLower(args[0]); h == "-h" || h == "--help" || h == "help" {
		return c.usage()
	}

	// Check for subcommand
	if subcmd, ok := c.Subcommands[args[0]]; ok {
		return subcmd.Run(args[1:])
	}

	return failure(fmt.Errorf("unknown command: %s", args[0]))
}

// usage prints the command usage
func (c *Command) usage() error {
	fmt.Fprintf(c.out, "Usage: %s <command> [args]\n\n", c.Name)
	fmt.Fprintf(c.out, "Commands:\n")

	names := make([]string, 0, len(c.Subcommands))
	for name := range c.Subcommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(c.out, "  %-15s %s\n", name, c.Subcommands[name].Description)
	}
	return nil
}

func newVersionCommand(s *streams) *Command {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	fs.SetOutput(s.errOut)

	return &Command{
		Name:        "version",
		Description: "Print the version",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return failure(err)
			}
			fmt.Fprintf(s.out, "pkgcycle %s\n", Version)
			return nil
		},
	}
}
