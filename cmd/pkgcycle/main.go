package main

import (
	"fmt"
	"os"

	"github.com/platinummonkey/pkgcycle/pkg/cli"
	"github.com/platinummonkey/pkgcycle/pkg/config"
)

func main() {
	// Seed the environment from .env without overriding what is already set
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitFailure)
	}

	// Create root command
	rootCmd := cli.NewRootCommand()

	// Execute command
	err := rootCmd.Execute()
	code := cli.ExitCode(err)
	if err != nil && code != cli.ExitViolations {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}
