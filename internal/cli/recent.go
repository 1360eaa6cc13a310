package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newRecentCmd(a *app) *cobra.Command {
	var limit int
	var counts bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recently launched demos",
		Example: `  democat recent
  democat recent --limit 50

  # Launch counts per demo
  democat recent --counts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)

			if counts {
				byLabel, err := store.Counts(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to read history: %w", err)
				}
				labels := make([]string, 0, len(byLabel))
				for label := range byLabel {
					labels = append(labels, label)
				}
				sort.Slice(labels, func(i, j int) bool {
					if byLabel[labels[i]] != byLabel[labels[j]] {
						return byLabel[labels[i]] > byLabel[labels[j]]
					}
					return labels[i] < labels[j]
				})

				t.AppendHeader(table.Row{"Demo", "Launches"})
				for _, label := range labels {
					t.AppendRow(table.Row{label, byLabel[label]})
				}
				t.Render()
				return nil
			}

			launches, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}
			if len(launches) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No launches yet")
				return nil
			}

			t.AppendHeader(table.Row{"Started", "Demo", "Transition", "Duration", "Result"})
			for _, l := range launches {
				result := "ok"
				if !l.Succeeded() {
					result = fmt.Sprintf("exit %d", l.ExitCode)
					if l.Error != "" && l.ExitCode <= 0 {
						result = l.Error
					}
				}
				t.AppendRow(table.Row{
					l.StartedAt.Format("2006-01-02 15:04:05"),
					l.Label,
					l.Transition,
					l.Duration.Round(100 * time.Millisecond).String(),
					result,
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of launches to show")
	cmd.Flags().BoolVar(&counts, "counts", false, "Show launch counts per demo instead")

	return cmd
}
