package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// isolate points HOME at a temp dir and clears env overrides
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for key := range keys {
		name := envPrefix + strings.ToUpper(key)
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return home
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default should return a Config")
	}
	if cfg.Catalog == "" {
		t.Error("Catalog should not be empty")
	}
	if cfg.Transition != "none" {
		t.Errorf("Expected default transition none, got %q", cfg.Transition)
	}
	if !cfg.Watch {
		t.Error("Watch should be enabled by default")
	}
	if cfg.Editor != "auto" {
		t.Errorf("Expected editor auto, got %q", cfg.Editor)
	}
	if !cfg.FirstRun {
		t.Error("FirstRun should be true by default")
	}
}

func TestConfigPath(t *testing.T) {
	path := ConfigPath()

	if !filepath.IsAbs(path) {
		t.Error("ConfigPath should return absolute path")
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("Expected config file name 'config.yaml', got %s", filepath.Base(path))
	}
	if filepath.Dir(path) != ConfigDir() {
		t.Errorf("Config file should live in %s", ConfigDir())
	}
}

func TestLoad_NoFile(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.FirstRun {
		t.Error("FirstRun should be true without a config file")
	}
	expected := filepath.Join(home, ".config", "democat", "catalog.yaml")
	if cfg.Catalog != expected {
		t.Errorf("Expected catalog %s, got %s", expected, cfg.Catalog)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

func TestLoad_Layers(t *testing.T) {
	home := isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "catalog: ~/demos/catalog.yaml\ntransition: fade\nlocale: sv\nwatch: false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	// File only
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.FirstRun {
		t.Error("FirstRun should be false with a config file")
	}
	if cfg.Catalog != filepath.Join(home, "demos", "catalog.yaml") {
		t.Errorf("Expected ~ to expand, got %s", cfg.Catalog)
	}
	if cfg.Transition != "fade" || cfg.Locale != "sv" || cfg.Watch {
		t.Errorf("File values not applied: %+v", cfg)
	}
	if cfg.Path() != path {
		t.Errorf("Expected path %s, got %s", path, cfg.Path())
	}

	// Env beats file
	t.Setenv("DEMOCAT_TRANSITION", "zoom")
	t.Setenv("DEMOCAT_TARGET", "ignored")
	cfg, err = Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Transition != "zoom" {
		t.Errorf("Expected env transition zoom, got %s", cfg.Transition)
	}

	// Flags beat env, unset flags don't
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("transition", "", "")
	flags.String("locale", "de", "")
	flags.Bool("debug", false, "")
	if err := flags.Parse([]string{"--transition", "scaleUp", "--debug"}); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path, flags)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Transition != "scaleUp" {
		t.Errorf("Expected flag transition scaleUp, got %s", cfg.Transition)
	}
	if !cfg.Debug {
		t.Error("Expected debug from flag")
	}
	if cfg.Locale != "sv" {
		t.Errorf("Unset flag should not override locale, got %s", cfg.Locale)
	}
}

func TestLoad_InvalidTransition(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("transition: spin\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path, nil); err == nil {
		t.Error("Expected error for unknown transition")
	}
}

func TestSaveAndLoad(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.Transition = "modernZoom"
	cfg.CatalogDir = "/srv/demos"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if cfg.FirstRun {
		t.Error("FirstRun should be cleared after Save")
	}

	loaded, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Transition != "modernZoom" {
		t.Errorf("Expected modernZoom, got %s", loaded.Transition)
	}
	if loaded.CatalogDir != "/srv/demos" {
		t.Errorf("Expected catalog dir /srv/demos, got %s", loaded.CatalogDir)
	}
	if loaded.DefaultTransition() != "modernZoom" {
		t.Errorf("DefaultTransition mismatch: %s", loaded.DefaultTransition())
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		HistoryPath: filepath.Join(dir, "a", "history.db"),
		PrefsPath:   filepath.Join(dir, "b", "prefs.yaml"),
		LogPath:     filepath.Join(dir, "c", "democat.log"),
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, sub := range []string{"a", "b", "c"} {
		if _, err := os.Stat(filepath.Join(dir, sub)); err != nil {
			t.Errorf("Expected directory %s to exist", sub)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home := isolate(t)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/x.yaml", filepath.Join(home, "x.yaml")},
		{"/abs/x.yaml", "/abs/x.yaml"},
		{"~other/x", "~other/x"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := expandHome(tt.in); got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
