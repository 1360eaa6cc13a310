package cli

import (
	"fmt"
	"strings"

	"democat/internal/catalog"
	"democat/internal/launcher"
	"democat/internal/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newLaunchCmd(a *app) *cobra.Command {
	var transition, id string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "launch <label>",
		Short: "Launch a demo by its full label",
		Long: `Launch the demo registered under label. The transition is the first of:
--transition, your saved preference for the label, the manifest's transition,
the configured default.`,
		Example: `  democat launch App/Activity/AlertDialog
  democat launch App/Graphics --transition zoom

  # Show what would run
  democat launch App/Graphics --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := normalizePrefix(args[0])

			var explicit launcher.Transition
			if transition != "" {
				t, err := launcher.ParseTransition(transition)
				if err != nil {
					return err
				}
				explicit = t
			}

			entries, err := a.entries(cmd.Context())
			if err != nil {
				return err
			}
			entry, err := pickEntry(entries, label, id)
			if err != nil {
				return err
			}

			p := a.prefs()
			t := launcher.Resolve(string(explicit), p.TransitionFor(entry.Label), entry.Target.Transition, string(a.cfg.DefaultTransition()))

			if dryRun {
				return printDryRun(cmd, a, entry, t)
			}

			store, err := a.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			l := launcher.NewExec(
				launcher.WithRecorder(store),
				launcher.WithLogger(a.logger.Named("launcher")),
				launcher.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
			)
			return l.Launch(cmd.Context(), entry.Label, entry.Target, t)
		},
	}

	cmd.Flags().StringVarP(&transition, "transition", "t", "", "Transition for this launch")
	cmd.Flags().StringVar(&id, "id", "", "Target id, when several demos share the label")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the command instead of running it")
	_ = cmd.RegisterFlagCompletionFunc("transition", completeTransitions)

	return cmd
}

// pickEntry finds the demo for label. Duplicate labels are legal in a
// catalog, so id breaks ties.
func pickEntry(entries []models.Entry, label, id string) (models.Entry, error) {
	if id != "" {
		e, ok := catalog.FindByID(entries, id)
		if !ok || (label != "" && e.Label != label) {
			return models.Entry{}, fmt.Errorf("no demo %q with id %q", label, id)
		}
		return e, nil
	}

	found := catalog.FindByLabel(entries, label)
	switch len(found) {
	case 0:
		return models.Entry{}, fmt.Errorf("no demo labelled %q", label)
	case 1:
		return found[0], nil
	}

	ids := make([]string, 0, len(found))
	for _, e := range found {
		ids = append(ids, e.Target.ID)
	}
	return models.Entry{}, fmt.Errorf("%d demos are labelled %q, pick one with --id (%s)", len(found), label, strings.Join(ids, ", "))
}

func printDryRun(cmd *cobra.Command, a *app, entry models.Entry, t launcher.Transition) error {
	l := launcher.NewExec(launcher.WithLogger(a.logger.Named("launcher")))
	c, err := l.Command(cmd.Context(), entry.Label, entry.Target, t)
	if err != nil {
		return err
	}
	a.logger.Debug("dry run", zap.String("label", entry.Label))

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "label:      %s\n", entry.Label)
	_, _ = fmt.Fprintf(w, "target:     %s\n", entry.Target.ID)
	_, _ = fmt.Fprintf(w, "command:    %s\n", entry.Target.CommandLine())
	if c.Dir != "" {
		_, _ = fmt.Fprintf(w, "dir:        %s\n", c.Dir)
	}
	_, _ = fmt.Fprintf(w, "transition: %s (%s)\n", t, t.Description())
	return nil
}
