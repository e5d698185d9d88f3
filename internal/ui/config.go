package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/storehours/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	var initFile bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after defaults, the config file and
STOREHOURS_* environment overrides have been applied.

With --init, writes the current configuration to the config file if no
file exists yet.`,
		Example: `  storehours config
  storehours config --init
  STOREHOURS_DB_DRIVER=mysql storehours config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath
			if path == "" {
				path = config.DefaultConfigPath()
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config file: %s\n\n", path)

			if initFile {
				_, err := os.Stat(path)
				switch {
				case os.IsNotExist(err):
					if err := a.config.SaveTo(path); err != nil {
						return fmt.Errorf("saving config: %w", err)
					}
					fmt.Fprintf(out, "Created %s\n\n", path)
				case err != nil:
					return fmt.Errorf("checking config file: %w", err)
				default:
					fmt.Fprintln(out, formatMuted("Config file already exists, leaving it unchanged."))
					fmt.Fprintln(out)
				}
			}

			printConfig(out, a.config)
			return nil
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "Create the config file with current values if missing")
	return cmd
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[input]")
	fmt.Fprintf(w, "  path       = %s\n", cfg.Input.Path)
	fmt.Fprintln(w, "\n[batch]")
	fmt.Fprintf(w, "  workers    = %d\n", cfg.Batch.Workers)
	fmt.Fprintf(w, "  on_error   = %s\n", cfg.Batch.OnError)
	fmt.Fprintf(w, "  large_file = %t\n", cfg.Batch.LargeFile)
	fmt.Fprintf(w, "  spool_path = %s\n", cfg.Batch.SpoolPath)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  driver     = %s\n", cfg.Storage.Driver)
	fmt.Fprintf(w, "  dsn        = %s\n", cfg.Storage.DSN)
	fmt.Fprintf(w, "  table      = %s\n", cfg.Storage.Table)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level      = %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  format     = %s\n", cfg.Log.Format)
}
