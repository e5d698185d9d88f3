package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/storehours/internal/hours"
)

func (a *App) openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open [day] [HH:MM]",
		Short: "List stores open at a weekday and time",
		Long: `List the stores whose stored intervals cover a weekday and a 24-hour
clock time.

Days are three-letter names (Mon, Tue, ...), "today" or "tomorrow"; the
time may be "now". Missing arguments default to today and now.`,
		Example: `  storehours open Sat 01:30
  storehours open tomorrow 09:00
  storehours open`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dayArg, clockArg string
			if len(args) > 0 {
				dayArg = args[0]
			}
			if len(args) > 1 {
				clockArg = args[1]
			}
			day, clock, err := hours.ResolveMoment(dayArg, clockArg, time.Now())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := a.ensureRepo(ctx); err != nil {
				return err
			}

			records, err := a.repo.ListOpenAt(ctx, day, clock)
			if err != nil {
				return fmt.Errorf("finding open stores: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintf(out, "No stores open on %s at %s.\n", day, clock)
				return nil
			}

			fmt.Fprintf(out, "%s open on %s at %s\n",
				formatStats(fmt.Sprintf("%d stores", countStores(records))), day, clock)
			fmt.Fprintln(out, renderRecords(records, termWidth()))
			return nil
		},
	}
}

func countStores(records []hours.Record) int {
	seen := make(map[int]struct{}, len(records))
	for _, r := range records {
		seen[r.StoreID] = struct{}{}
	}
	return len(seen)
}
