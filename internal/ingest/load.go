package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/storehours/internal/hours"
	"github.com/javiermolinar/storehours/internal/spool"
)

// LoadOptions controls how records reach the repository.
type LoadOptions struct {
	// Replace drops existing records first.
	Replace bool
	// LargeFile writes records to SpoolPath and bulk-loads the file. It always
	// replaces the table.
	LargeFile bool
	SpoolPath string
	Logger    zerolog.Logger
}

// Load stores records in repo and returns the number of rows written.
func Load(ctx context.Context, repo hours.Repository, records []hours.Record, opts LoadOptions) (int64, error) {
	if opts.Replace || opts.LargeFile {
		if err := repo.Reset(ctx); err != nil {
			return 0, fmt.Errorf("resetting table: %w", err)
		}
		opts.Logger.Debug().Msg("table reset")
	}

	if !opts.LargeFile {
		n, err := repo.SaveRecords(ctx, records)
		if err != nil {
			return 0, fmt.Errorf("saving records: %w", err)
		}
		opts.Logger.Info().Int64("rows", n).Str("strategy", "insert").Msg("records loaded")
		return n, nil
	}

	if opts.SpoolPath == "" {
		return 0, fmt.Errorf("large-file load needs a spool path")
	}
	if err := spool.WriteFile(opts.SpoolPath, records); err != nil {
		return 0, err
	}
	opts.Logger.Debug().Str("path", opts.SpoolPath).Int("records", len(records)).Msg("spool written")

	n, err := repo.LoadFile(ctx, opts.SpoolPath)
	if err != nil {
		return 0, fmt.Errorf("bulk-loading %s: %w", opts.SpoolPath, err)
	}
	opts.Logger.Info().Int64("rows", n).Str("strategy", "bulk").Str("spool", opts.SpoolPath).Msg("records loaded")
	return n, nil
}
