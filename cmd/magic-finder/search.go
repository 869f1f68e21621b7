package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/magic-finder/magic-finder/internal/application/handlers"
	"github.com/magic-finder/magic-finder/internal/domain/services"
	"github.com/magic-finder/magic-finder/internal/infrastructure/config"
)

type searchFlags struct {
	exact          bool
	databaseFolder bool
}

func runSearch(cmd *cobra.Command, args []string, flags searchFlags) error {
	out := cmd.OutOrStdout()

	if flags.databaseFolder {
		return withConfig(func(cfg *config.Config, _ *slog.Logger) error {
			fmt.Fprintln(out, cfg.DataDir)
			return exitWith(ExitPrintedDataFolder)
		})
	}

	if len(args) == 0 {
		return services.ErrEmptyQuery
	}

	ctx := cmd.Context()

	return withDeps(func(deps *Deps) error {
		result, err := deps.SearchHandler.Handle(ctx, args, flags.exact)
		if err != nil {
			return err
		}

		switch result.Outcome {
		case handlers.OutcomeExact:
			fmt.Fprintln(out, result.Text)
			return exitWith(ExitExactCardFound)
		case handlers.OutcomeNoExact:
			fmt.Fprintf(out, "No card found with exact name of %s\n", result.Query)
			return exitWith(ExitNoExactMatch)
		case handlers.OutcomeAmbiguous:
			for _, c := range result.Cards {
				fmt.Fprintln(out, c.Name)
			}
			return exitWith(ExitMultipleCardsMatch)
		default:
			for _, w := range result.Words {
				fmt.Fprintln(out, w)
			}
			return exitWith(ExitDidYouMean)
		}
	})
}
