package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/storehours/internal/ingest"
)

func (a *App) loadCmd() *cobra.Command {
	var (
		flags     batchFlags
		largeFile bool
		spoolPath string
		replace   bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "load [file]",
		Short: "Parse store hours and load them into the database",
		Long: `Parse a store hours file and load the records into the configured
database table.

By default records are appended with batched inserts. --replace drops
the table first. --large-file writes the records to a spool file and
bulk-loads it (LOAD DATA LOCAL INFILE on MySQL); it always replaces the
table.`,
		Example: `  storehours load store_hours.txt
  storehours load --replace --on-error=abort store_hours.txt
  storehours load --large-file --spool=/tmp/hours.csv store_hours.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.parseInput(cmd, args, flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSummary(out, res)
			if a.debug && len(res.Records) > 0 {
				fmt.Fprintln(out, renderRecords(res.Records, termWidth()))
			}
			if dryRun {
				fmt.Fprintln(out, formatMuted("Dry run: nothing loaded."))
				return nil
			}

			ctx := cmd.Context()
			if err := a.ensureRepo(ctx); err != nil {
				return err
			}

			opts := ingest.LoadOptions{
				Replace:   replace,
				LargeFile: largeFile || a.config.Batch.LargeFile,
				SpoolPath: a.config.Batch.SpoolPath,
				Logger:    a.logger,
			}
			if spoolPath != "" {
				opts.SpoolPath = spoolPath
			}

			n, err := ingest.Load(ctx, a.repo, res.Records, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Loaded %s into %s\n",
				formatStats(fmt.Sprintf("%d rows", n)),
				formatHeader(a.config.Storage.Table))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&largeFile, "large-file", false, "Spool records to disk and bulk-load them")
	cmd.Flags().StringVar(&spoolPath, "spool", "", "Spool file path (default from config)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Drop existing records before loading")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse only, do not load")
	return cmd
}
