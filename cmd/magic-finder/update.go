package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magic-finder/magic-finder/internal/application/handlers"
)

type updateFlags struct {
	format string
}

func newUpdateCmd() *cobra.Command {
	var flags updateFlags

	cmd := &cobra.Command{
		Use:   "update <file>",
		Short: "Rebuild the card database from a Scryfall bulk data file",
		Long:  "Replaces the local card database with the cards in a Scryfall bulk data dump (JSON array or JSON lines).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (json, jsonl, auto)")

	return cmd
}

func runUpdate(cmd *cobra.Command, filePath string, flags updateFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withDeps(func(deps *Deps) error {
		result, err := deps.UpdateHandler.Handle(ctx, filePath, handlers.UpdateOptions{Format: flags.format})
		if err != nil {
			return fmt.Errorf("updating database: %w", err)
		}

		printUpdateSummary(cmd, result)
		fmt.Fprintln(out, "Your database should be updated now")
		return exitWith(ExitUpdateSuccess)
	})
}

func printUpdateSummary(cmd *cobra.Command, result *handlers.UpdateResult) {
	fmt.Fprintf(cmd.OutOrStdout(), "Read %d records: %d cards, %d words", result.Records, result.Cards, result.Words)
	if result.Filtered > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), ", %d filtered", result.Filtered)
	}
	if result.Duplicates > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), ", %d duplicates skipped", result.Duplicates)
	}
	fmt.Fprintln(cmd.OutOrStdout())
}
