package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCompleteCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "complete <prefix...>",
		Short: "Print card names completing a prefix",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(func(deps *Deps) error {
				names, err := deps.CompleteHandler.Handle(ctx, strings.Join(args, " "), limit)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of names")

	return cmd
}
