package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"democat/internal/editor"
	"democat/internal/launcher"
	"democat/internal/models"
	"democat/internal/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAddCmd(a *app) *cobra.Command {
	var id, dir, transition string

	cmd := &cobra.Command{
		Use:   "add <label> -- <command...>",
		Short: "Register a demo in the catalog manifest",
		Long: `Append a demo to the catalog manifest. Everything after "--" is the
command line. The id defaults to the label in lower-case with
non-alphanumerics replaced by dashes.`,
		Example: `  democat add "App/Activity/Alert Dialog" -- ./demos/alert-dialog --dark
  democat add Graphics/Shapes --id shapes --transition fade -- go run ./shapes`,
		Args: func(cmd *cobra.Command, args []string) error {
			dash := cmd.ArgsLenAtDash()
			if dash != 1 || len(args) < 2 {
				return fmt.Errorf("usage: %s", cmd.UseLine())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			label := strings.TrimSpace(args[0])
			if id == "" {
				id = slugify(label)
			}
			if transition != "" {
				t, err := launcher.ParseTransition(transition)
				if err != nil {
					return err
				}
				transition = t.String()
			}

			def := models.EntryDefinition{
				ID:         id,
				Label:      &label,
				Command:    args[1:],
				Dir:        dir,
				Transition: transition,
			}

			file := source.NewFile(a.cfg.Catalog)
			if err := file.Add(def); err != nil {
				return fmt.Errorf("failed to add %s: %w", label, err)
			}

			a.logger.Info("demo added", zap.String("id", id), zap.String("label", label), zap.String("manifest", file.Path()))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to %s\n", label, id, file.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Unique id for the demo")
	cmd.Flags().StringVar(&dir, "dir", "", "Working directory for the command")
	cmd.Flags().StringVarP(&transition, "transition", "t", "", "Default transition for the demo")
	_ = cmd.RegisterFlagCompletionFunc("transition", completeTransitions)

	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a demo from the catalog manifest",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := source.NewFile(a.cfg.Catalog)
			found, err := file.Remove(args[0])
			if err != nil {
				return fmt.Errorf("failed to remove %s: %w", args[0], err)
			}
			if !found {
				return fmt.Errorf("no demo with id %q in %s", args[0], file.Path())
			}

			a.logger.Info("demo removed", zap.String("id", args[0]), zap.String("manifest", file.Path()))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", args[0], file.Path())
			return nil
		},
	}
}

// manifestTemplate seeds a manifest that does not exist yet
const manifestTemplate = `# democat catalog
#
# Each entry needs an id and a command. The label is a slash-separated path
# shown as folders in the browser; without one the id is used.
#
# entries:
#   - id: alert-dialog
#     label: App/Activity/Alert Dialog
#     command: ["./demos/alert-dialog", "--dark"]
#     transition: fade
entries: []
`

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the catalog manifest in your editor",
		Long: `Open the catalog manifest in the configured editor (--editor, $VISUAL,
$EDITOR, then Cursor, VS Code or Zed) and check it once the editor exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := editor.DefaultConfig()
			cfg.Editor = a.cfg.Editor
			ed, err := editor.Detect(cfg)
			if err != nil {
				return err
			}

			path := a.cfg.Catalog
			if _, err := os.Stat(path); os.IsNotExist(err) {
				if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
					return err
				}
				if err := os.WriteFile(path, []byte(manifestTemplate), 0644); err != nil {
					return fmt.Errorf("failed to create %s: %w", path, err)
				}
			}

			a.logger.Debug("opening manifest", zap.String("editor", ed.Name()), zap.String("path", path))
			c := ed.Command(path)
			c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
			if err := c.Run(); err != nil {
				return fmt.Errorf("%s: %w", ed.Name(), err)
			}

			entries, err := source.NewFile(path).Entries(cmd.Context())
			if err != nil {
				return fmt.Errorf("manifest is invalid: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Catalog has %d demos\n", len(entries))
			return nil
		},
	}
}

// slugify turns a label into an id: "App/Alert Dialog" -> "app-alert-dialog"
func slugify(label string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
