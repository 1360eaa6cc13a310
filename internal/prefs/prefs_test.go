package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"democat/internal/launcher"
)

func TestDefault(t *testing.T) {
	p := Default("")

	if p.Path() != DefaultPath() {
		t.Errorf("Expected default path %s, got %s", DefaultPath(), p.Path())
	}
	if p.Transitions == nil {
		t.Error("Transitions map should be initialized")
	}
	if p.LastPrefix != "" {
		t.Errorf("Expected empty last prefix, got %q", p.LastPrefix)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Path() != path {
		t.Errorf("Expected path %s, got %s", path, p.Path())
	}
	if len(p.Transitions) != 0 {
		t.Errorf("Expected no transitions, got %d", len(p.Transitions))
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	p := Default(path)
	p.LastPrefix = "App/Activity"
	p.SetTransition("App/Activity/AlertDialog", launcher.TransitionZoom)
	p.SetTransition("App/Graphics", launcher.TransitionFade)
	p.ClearTransition("App/Graphics")

	if err := p.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.LastPrefix != "App/Activity" {
		t.Errorf("Expected last prefix App/Activity, got %q", loaded.LastPrefix)
	}
	if got := loaded.TransitionFor("App/Activity/AlertDialog"); got != "zoom" {
		t.Errorf("Expected zoom, got %q", got)
	}
	if got := loaded.TransitionFor("App/Graphics"); got != "" {
		t.Errorf("Cleared transition should be empty, got %q", got)
	}
}

func TestLoad_DropsUnknownPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	content := "transitions:\n  App/A: spin\n  App/B: fade\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := p.Transitions["App/A"]; ok {
		t.Error("Unknown preset should be dropped")
	}
	if p.TransitionFor("App/B") != "fade" {
		t.Errorf("Expected fade for App/B, got %q", p.TransitionFor("App/B"))
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	if err := os.WriteFile(path, []byte("transitions: [::"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}
