// Package ui implements the storehours command line.
package ui

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/storehours/internal/config"
	"github.com/javiermolinar/storehours/internal/db"
	"github.com/javiermolinar/storehours/internal/hours"
	"github.com/javiermolinar/storehours/internal/logging"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo       hours.Repository
	config     *config.Config
	logger     zerolog.Logger
	root       *cobra.Command
	configPath string
	debug      bool // Enable debug logging and record dumps
	noColor    bool
}

// NewApp creates a new CLI application. A nil cfg is loaded from --config (or
// the default path) when a command runs; a nil repo is opened on first use.
func NewApp(repo hours.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, logger: zerolog.Nop()}

	a.root = &cobra.Command{
		Use:   "storehours",
		Short: "Normalize store opening hours into per-weekday intervals",
		Long: `Storehours reads free-form store opening hours such as

  "Store 6","Mon-Thu 11 am - 11 pm / Fri-Sat 11 am - 12:30 am"

and normalizes them into one record per store, weekday and interval in
24-hour time, splitting overnight hours at midnight. Records can be
printed or loaded into SQLite, MySQL or PostgreSQL.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	// Add global flags
	a.root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.config/storehours/config.toml)")
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging and print parsed records")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.parseCmd())
	a.root.AddCommand(a.loadCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.openCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "storehours %s (commit: %s)\n", Version, Commit)
		},
	}
}

// setup loads the config and configures logging before any command runs.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if a.noColor {
		DisableColor()
	}

	if a.config == nil {
		path := a.configPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		cfg, err := config.LoadFrom(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		a.config = cfg
	}

	level := a.config.Log.Level
	if a.debug {
		level = "debug"
	}
	logger, err := logging.SetupWithWriter(level, a.config.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// ensureRepo opens the configured database on first use.
func (a *App) ensureRepo(ctx context.Context) error {
	if a.repo != nil {
		return nil
	}
	s := a.config.Storage
	repo, err := db.Open(ctx, s.Driver, s.DSN, s.Table)
	if err != nil {
		return fmt.Errorf("opening %s database: %w", s.Driver, err)
	}
	a.logger.Debug().Str("driver", s.Driver).Str("table", s.Table).Msg("database opened")
	a.repo = repo
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// ExecuteContext runs the CLI application with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// Close releases the repository if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}
