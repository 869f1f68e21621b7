package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magic-finder/magic-finder/internal/application/handlers"
	"github.com/magic-finder/magic-finder/internal/domain/ports"
	"github.com/magic-finder/magic-finder/internal/infrastructure/config"
	"github.com/magic-finder/magic-finder/internal/infrastructure/frontend/rofi"
	"github.com/magic-finder/magic-finder/internal/infrastructure/frontend/terminal"
)

func newInteractiveCmd() *cobra.Command {
	var frontend string

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Search with a menu front-end",
		Long:  "Prompts for a card name, lets you pick from suggestions or matches, and shows the card.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, frontend)
		},
	}

	cmd.Flags().StringVar(&frontend, "frontend", "", "Front-end to use (rofi, terminal); default from config")

	return cmd
}

func runInteractive(cmd *cobra.Command, frontend string) error {
	ctx := cmd.Context()

	return withInternalDeps(func(d *internalDeps) error {
		kind := frontend
		if kind == "" {
			kind = d.Config.Frontend.Kind
		}

		presenter, err := newPresenter(cmd, kind, d.Config.Frontend)
		if err != nil {
			return err
		}

		handler := handlers.NewInteractiveHandler(d.store, d.resolver, d.display, presenter, d.Logger)
		_, err = handler.Handle(ctx)
		if errors.Is(err, ports.ErrSelectionCancelled) || errors.Is(err, handlers.ErrNothingFound) {
			d.Logger.Info("interactive search ended", "reason", err)
			return exitWith(ExitFailure)
		}
		return err
	})
}

func newPresenter(cmd *cobra.Command, kind string, cfg config.FrontendConfig) (ports.Presenter, error) {
	switch kind {
	case "rofi":
		return rofi.NewPresenter(cfg), nil
	case "terminal":
		return terminal.NewPresenter(cmd.InOrStdin(), cmd.OutOrStdout()), nil
	default:
		return nil, fmt.Errorf("unknown frontend %q (valid: rofi, terminal)", kind)
	}
}
