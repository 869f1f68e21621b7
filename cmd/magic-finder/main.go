// Package main provides the entry point for the magic-finder CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version          = "0.1.0-dev"
	globalConfigPath string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	code, message := exitStatus(err)
	if message != "" {
		fmt.Fprintln(stderr, message)
	}
	return code
}

func newRootCmd() *cobra.Command {
	var flags searchFlags

	rootCmd := &cobra.Command{
		Use:           "magic-finder [--exact] <search text...>",
		Short:         "Find Magic: The Gathering cards by partial or misspelled name",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&globalConfigPath, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/magic-finder/config.yaml)")
	rootCmd.Flags().BoolVarP(&flags.exact, "exact", "e", false, "Search for the exact card name")
	rootCmd.Flags().BoolVarP(&flags.databaseFolder, "database-folder", "d", false, "Print the database folder")

	rootCmd.AddCommand(
		newUpdateCmd(),
		newFetchCmd(),
		newInteractiveCmd(),
		newCompleteCmd(),
		newServeCmd(),
		newConfigCmd(),
	)

	return rootCmd
}
