package cli

import (
	"context"
	"fmt"
	"strings"

	"democat/internal/catalog"
	"democat/internal/config"
	"democat/internal/history"
	"democat/internal/logging"
	"democat/internal/models"
	"democat/internal/prefs"
	"democat/internal/source"
	"democat/internal/watch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds what every command needs once flags are parsed
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

// setup loads configuration and builds the logger for cmd
func (a *app) setup(cmd *cobra.Command, cfgFile string) error {
	cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	opts := logging.Options{Debug: cfg.Debug}
	if cmd.Annotations[annotationTUI] != "" {
		opts.File = cfg.LogPath
	}
	logger, err := logging.New(opts)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("config", cfg.Path()),
		zap.Bool("first_run", cfg.FirstRun),
		zap.String("catalog", cfg.Catalog),
		zap.String("catalog_dir", cfg.CatalogDir),
	)
	return nil
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// source returns the configured catalog: the manifest file, followed by the
// manifests of the catalog directory when one is set
func (a *app) source() source.Source {
	file := source.NewFile(a.cfg.Catalog)
	if a.cfg.CatalogDir == "" {
		return file
	}
	return source.Multi(file, source.NewDir(a.cfg.CatalogDir, a.cfg.CatalogGlob))
}

func (a *app) entries(ctx context.Context) ([]models.Entry, error) {
	entries, err := a.source().Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return entries, nil
}

func (a *app) builder() *catalog.Builder {
	return catalog.NewBuilder(catalog.ParseLocale(a.cfg.Locale))
}

func (a *app) openHistory() (*history.Store, error) {
	return history.Open(a.cfg.HistoryPath)
}

// prefs loads preferences, falling back to empty ones when the file is unreadable
func (a *app) prefs() *prefs.Prefs {
	p, err := prefs.Load(a.cfg.PrefsPath)
	if err != nil {
		a.logger.Warn("failed to load preferences, using defaults", zap.Error(err))
		return prefs.Default(a.cfg.PrefsPath)
	}
	return p
}

// startWatcher watches every manifest the source reads from. The watcher
// stops when ctx is cancelled; the caller closes it.
func (a *app) startWatcher(ctx context.Context) (*watch.Watcher, error) {
	w, err := watch.New(a.logger.Named("watch"))
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.AddFile(a.cfg.Catalog); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", a.cfg.Catalog, err)
	}
	if a.cfg.CatalogDir != "" {
		if err := w.AddDir(a.cfg.CatalogDir, a.cfg.CatalogGlob); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", a.cfg.CatalogDir, err)
		}
	}
	go w.Run(ctx)
	return w, nil
}

// normalizePrefix accepts prefixes typed with stray slashes ("/App/")
func normalizePrefix(s string) string {
	return strings.Trim(strings.TrimSpace(s), "/")
}
