package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the configuration after defaults, the config file, DEMOCAT_*
environment variables and flags are applied. --write saves it to the config
file so it can be edited.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			w := cmd.OutOrStdout()

			if write {
				if err := cfg.Save(); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
				_, _ = fmt.Fprintf(w, "Wrote %s\n", cfg.Path())
				return nil
			}

			source := cfg.Path()
			if cfg.FirstRun {
				source += " (not created yet)"
			}
			_, _ = fmt.Fprintf(w, "Config file: %s\n", source)

			t := table.NewWriter()
			t.SetOutputMirror(w)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Key", "Value"})
			t.AppendRows([]table.Row{
				{"catalog", cfg.Catalog},
				{"catalog_dir", cfg.CatalogDir},
				{"catalog_glob", cfg.CatalogGlob},
				{"locale", cfg.Locale},
				{"transition", cfg.Transition},
				{"history_path", cfg.HistoryPath},
				{"prefs_path", cfg.PrefsPath},
				{"log_path", cfg.LogPath},
				{"debug", cfg.Debug},
				{"watch", cfg.Watch},
				{"editor", cfg.Editor},
			})
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Save the effective configuration to the config file")

	return cmd
}
