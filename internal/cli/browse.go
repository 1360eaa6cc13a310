package cli

import (
	"context"
	"fmt"

	"democat/internal/browser"
	"democat/internal/editor"
	"democat/internal/launcher"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [prefix]",
		Short: "Open the interactive catalog browser",
		Long: `Open the catalog one level at a time. Without a prefix the browser
starts where the previous session ended.`,
		Example: `  # Resume where you left off
  democat browse

  # Start inside a folder
  democat browse App/Activity`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationTUI: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, a, args)
		},
	}
}

func runBrowse(cmd *cobra.Command, a *app, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	p := a.prefs()
	prefix := p.LastPrefix
	if len(args) == 1 {
		prefix = normalizePrefix(args[0])
	}

	store, err := a.openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	runner := launcher.NewExec(
		launcher.WithRecorder(store),
		launcher.WithLogger(a.logger.Named("launcher")),
	)

	var changes <-chan struct{}
	if a.cfg.Watch {
		w, err := a.startWatcher(ctx)
		if err != nil {
			a.logger.Warn("catalog watching disabled", zap.Error(err))
		} else {
			defer w.Close()
			changes = w.Changes()
		}
	}

	edCfg := editor.DefaultConfig()
	edCfg.Editor = a.cfg.Editor
	ed, err := editor.Detect(edCfg)
	if err != nil {
		a.logger.Debug("manifest editing disabled", zap.Error(err))
	}

	m := browser.New(browser.Options{
		Context:           ctx,
		Source:            a.source(),
		Builder:           a.builder(),
		Runner:            runner,
		Prefs:             p,
		History:           store,
		Changes:           changes,
		Editor:            ed,
		ManifestPath:      a.cfg.Catalog,
		DefaultTransition: a.cfg.DefaultTransition(),
		Prefix:            prefix,
		Version:           Version,
		Logger:            a.logger.Named("browser"),
	})

	a.logger.Info("starting browser", zap.String("prefix", prefix))
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running browser: %w", err)
	}
	return nil
}
