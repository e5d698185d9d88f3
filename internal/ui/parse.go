package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/storehours/internal/config"
	"github.com/javiermolinar/storehours/internal/ingest"
)

// batchFlags are the parsing flags shared by parse and load.
type batchFlags struct {
	onError string
	workers int
}

func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.onError, "on-error", "", "Bad line policy: skip, abort or partial (default from config)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Parallel parse workers (default from config)")
}

// parseInput parses the schedule file named by args (or the configured input).
func (a *App) parseInput(cmd *cobra.Command, args []string, flags batchFlags) (*ingest.Result, error) {
	path := a.config.Input.Path
	if len(args) > 0 {
		path = args[0]
	}

	opts := ingest.Options{
		Workers: a.config.Batch.Workers,
		OnError: a.config.Batch.OnError,
		Logger:  a.logger,
	}
	if flags.workers > 0 {
		opts.Workers = flags.workers
	}
	if flags.onError != "" {
		switch flags.onError {
		case config.OnErrorSkip, config.OnErrorAbort, config.OnErrorPartial:
			opts.OnError = flags.onError
		default:
			return nil, fmt.Errorf("invalid --on-error %q (want skip, abort or partial)", flags.onError)
		}
	}

	in, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()

	a.logger.Debug().Str("input", path).Int("workers", opts.Workers).Str("on_error", opts.OnError).Msg("parsing")
	res, err := ingest.Parse(cmd.Context(), in, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return res, nil
}

func (a *App) parseCmd() *cobra.Command {
	var (
		flags  batchFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse store hours and print the records",
		Long: `Parse a store hours file and print one record per store, weekday and
interval without touching the database.

Use "-" to read from stdin. The csv format matches the spool file used
by large-file loads: store_id,name,weekday,open,close.`,
		Example: `  storehours parse store_hours.txt
  storehours parse --format=table store_hours.txt
  echo 'Store 49,Fri 11 am - 11 pm' | storehours parse -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.parseInput(cmd, args, flags)
			if err != nil {
				return err
			}

			if err := writeRecords(cmd.OutOrStdout(), res.Records, format); err != nil {
				return err
			}
			printSummary(cmd.ErrOrStderr(), res)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or table")
	return cmd
}
