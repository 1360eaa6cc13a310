package cli

import (
	"democat/internal/launcher"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newTransitionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transitions",
		Short: "List transition presets",
		Long: `List the transition presets a demo can be launched with. The chosen
preset reaches the demo as $DEMOCAT_TRANSITION.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Preset", "Description"})
			for _, tr := range launcher.Transitions() {
				t.AppendRow(table.Row{tr, tr.Description()})
			}
			t.Render()
		},
	}
}

func completeTransitions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, len(launcher.Transitions()))
	for _, t := range launcher.Transitions() {
		names = append(names, t.String())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
