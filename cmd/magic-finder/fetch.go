package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magic-finder/magic-finder/internal/application/handlers"
	"github.com/magic-finder/magic-finder/internal/infrastructure/scryfall"
)

type fetchFlags struct {
	bulkType string
	update   bool
}

func newFetchCmd() *cobra.Command {
	var flags fetchFlags

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download Scryfall bulk data",
		Long:  "Downloads a Scryfall bulk data dump into the data directory and optionally rebuilds the database from it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.bulkType, "type", "t", "", "Bulk data type (default from config, usually default_cards)")
	cmd.Flags().BoolVarP(&flags.update, "update", "u", false, "Rebuild the database from the download")

	return cmd
}

func runFetch(cmd *cobra.Command, flags fetchFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withDeps(func(deps *Deps) error {
		bulkType := flags.bulkType
		if bulkType == "" {
			bulkType = deps.Config.Scryfall.BulkType
		}

		client := scryfall.NewClient(deps.Config.Scryfall, deps.Logger)
		fetcher := handlers.NewFetchHandler(client, deps.Config.DataDir, deps.Logger)

		fmt.Fprintf(out, "Downloading %s...\n", bulkType)
		result, err := fetcher.Handle(ctx, bulkType)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %d bytes to %s\n", result.Bytes, result.Path)

		if !flags.update {
			return nil
		}

		updated, err := deps.UpdateHandler.Handle(ctx, result.Path, handlers.UpdateOptions{Format: "json"})
		if err != nil {
			return fmt.Errorf("updating database: %w", err)
		}
		printUpdateSummary(cmd, updated)
		fmt.Fprintln(out, "Your database should be updated now")
		return exitWith(ExitUpdateSuccess)
	})
}
