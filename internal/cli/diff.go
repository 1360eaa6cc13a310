package cli

import (
	"fmt"

	"democat/internal/catdiff"
	"democat/internal/source"

	"github.com/spf13/cobra"
)

func newDiffCmd(a *app) *cobra.Command {
	var rev string
	var stat bool

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare the catalog manifest with a committed revision",
		Long: `Show how the catalog manifest changed since a git revision (default HEAD).
Each demo is compared as one line: label, id, command and transition.`,
		Example: `  democat diff
  democat diff --rev HEAD~3 --stat`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			committed := source.NewGit(a.cfg.Catalog, rev)
			oldEntries, err := committed.Entries(ctx)
			if err != nil {
				return fmt.Errorf("failed to read %s at %s: %w", a.cfg.Catalog, committed.Revision(), err)
			}

			current := source.NewFile(a.cfg.Catalog)
			newEntries, err := current.Entries(ctx)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", a.cfg.Catalog, err)
			}

			result := catdiff.Compare(
				fmt.Sprintf("%s@%s", current.Path(), committed.Revision()), oldEntries,
				current.Path(), newEntries,
			)

			w := cmd.OutOrStdout()
			if !stat && result.HasChanges() {
				_, _ = fmt.Fprint(w, result.Unified())
			}
			_, _ = fmt.Fprintln(w, result.Summary())
			return nil
		},
	}

	cmd.Flags().StringVar(&rev, "rev", "HEAD", "Revision to compare against")
	cmd.Flags().BoolVar(&stat, "stat", false, "Only print the summary")

	return cmd
}
