package models

import "testing"

func strPtr(s string) *string { return &s }

func TestNewEntry(t *testing.T) {
	def := EntryDefinition{
		ID:         "alert-dialog",
		Label:      strPtr("App/Activity/AlertDialog"),
		Command:    []string{"./alert", "--dark"},
		Dir:        "/opt/demos",
		Env:        map[string]string{"THEME": "dark"},
		Transition: "fade",
	}

	e := NewEntry(def)

	if e.Label != "App/Activity/AlertDialog" {
		t.Errorf("Expected label 'App/Activity/AlertDialog', got %s", e.Label)
	}
	if e.Target.ID != "alert-dialog" {
		t.Errorf("Expected target id 'alert-dialog', got %s", e.Target.ID)
	}
	if e.Target.CommandLine() != "./alert --dark" {
		t.Errorf("Unexpected command line: %s", e.Target.CommandLine())
	}
	if e.Target.Transition != "fade" {
		t.Errorf("Expected transition 'fade', got %s", e.Target.Transition)
	}

	// The entry must not share backing storage with the definition
	def.Command[0] = "changed"
	def.Env["THEME"] = "light"
	if e.Target.Command[0] != "./alert" {
		t.Error("Command should be copied from definition")
	}
	if e.Target.Env["THEME"] != "dark" {
		t.Error("Env should be copied from definition")
	}
}

func TestNewEntry_MissingLabelFallsBackToID(t *testing.T) {
	e := NewEntry(EntryDefinition{ID: "com.example.Hello", Command: []string{"hello"}})
	if e.Label != "com.example.Hello" {
		t.Errorf("Expected label to fall back to id, got %q", e.Label)
	}
}

func TestNewEntry_EmptyLabelIsKept(t *testing.T) {
	e := NewEntry(EntryDefinition{ID: "broken", Label: strPtr(""), Command: []string{"x"}})
	if e.Label != "" {
		t.Errorf("Expected empty label to be kept, got %q", e.Label)
	}
}

func TestEntryName(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"App/Activity/Custom Title", "Custom Title"},
		{"Graphics", "Graphics"},
		{"", ""},
	}

	for _, tt := range tests {
		e := Entry{Label: tt.label}
		if got := e.Name(); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestEntryDefinition_RoundTrip(t *testing.T) {
	e := Entry{
		Label:  "App/Graphics",
		Target: Target{ID: "graphics", Command: []string{"gfx"}},
	}

	def := e.Definition()
	if def.Label == nil || *def.Label != "App/Graphics" {
		t.Fatalf("Definition should carry label, got %v", def.Label)
	}
	if got := NewEntry(def); got.Label != e.Label || got.Target.ID != e.Target.ID {
		t.Errorf("Expected %+v, got %+v", e, got)
	}
}

func TestListItemActions(t *testing.T) {
	leaf := ListItem{Title: "AlertDialog", Action: Leaf{Target: Target{ID: "t2"}}}
	folder := ListItem{Title: "Activity", Action: Descend{Prefix: "App/Activity"}}

	if leaf.IsFolder() {
		t.Error("Leaf row should not be a folder")
	}
	if !folder.IsFolder() {
		t.Error("Descend row should be a folder")
	}

	if target, ok := leaf.Target(); !ok || target.ID != "t2" {
		t.Errorf("Expected leaf target t2, got %+v (ok=%v)", target, ok)
	}
	if _, ok := folder.Target(); ok {
		t.Error("Folder row should not expose a target")
	}

	if prefix, ok := folder.Prefix(); !ok || prefix != "App/Activity" {
		t.Errorf("Expected prefix App/Activity, got %q (ok=%v)", prefix, ok)
	}
	if _, ok := leaf.Prefix(); ok {
		t.Error("Leaf row should not expose a prefix")
	}
}
