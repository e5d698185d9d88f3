package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <store-id>",
		Short:   "Show a store's stored opening intervals",
		Example: `  storehours show 26`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid store ID: %w", err)
			}

			ctx := cmd.Context()
			if err := a.ensureRepo(ctx); err != nil {
				return err
			}

			records, err := a.repo.ListByStore(ctx, id)
			if err != nil {
				return fmt.Errorf("fetching store %d: %w", id, err)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintf(out, "No hours stored for store %d.\n", id)
				return nil
			}

			fmt.Fprintf(out, "=== %s ===\n", formatHeader(records[0].Label))
			fmt.Fprintln(out, renderRecords(records, termWidth()))
			return nil
		},
	}
}
