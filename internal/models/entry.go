package models

import "strings"

// Target is the launch descriptor for a catalog entry. The catalog builder
// treats it as opaque; only the launcher looks inside.
type Target struct {
	ID         string            // Unique identifier (manifest id)
	Command    []string          // argv; Command[0] is resolved via PATH
	Dir        string            // Working directory (optional)
	Env        map[string]string // Extra environment (optional)
	Transition string            // Default transition preset from the manifest (optional)
}

// Entry is one registered demo with its full hierarchical label
type Entry struct {
	Label  string // Slash-delimited path, e.g. "App/Activity/Custom Title"
	Target Target
}

// EntryDefinition is the YAML structure for a manifest entry
type EntryDefinition struct {
	ID         string            `yaml:"id"`
	Label      *string           `yaml:"label,omitempty"`
	Command    []string          `yaml:"command"`
	Dir        string            `yaml:"dir,omitempty"`
	Env        map[string]string `yaml:"env,omitempty"`
	Transition string            `yaml:"transition,omitempty"`
}

// CatalogConfig is the root YAML structure of a manifest
type CatalogConfig struct {
	Entries []EntryDefinition `yaml:"entries"`
}

// NewEntry creates an Entry from its definition. A definition without a
// label falls back to its id; an explicitly empty label is kept as-is.
func NewEntry(def EntryDefinition) Entry {
	label := def.ID
	if def.Label != nil {
		label = *def.Label
	}

	var env map[string]string
	if len(def.Env) > 0 {
		env = make(map[string]string, len(def.Env))
		for k, v := range def.Env {
			env[k] = v
		}
	}

	return Entry{
		Label: label,
		Target: Target{
			ID:         def.ID,
			Command:    append([]string(nil), def.Command...),
			Dir:        def.Dir,
			Env:        env,
			Transition: def.Transition,
		},
	}
}

// Definition converts the entry back to its manifest form
func (e Entry) Definition() EntryDefinition {
	label := e.Label
	return EntryDefinition{
		ID:         e.Target.ID,
		Label:      &label,
		Command:    append([]string(nil), e.Target.Command...),
		Dir:        e.Target.Dir,
		Env:        e.Target.Env,
		Transition: e.Target.Transition,
	}
}

// Name returns the last label segment, the title the entry has as a leaf
func (e Entry) Name() string {
	if i := strings.LastIndex(e.Label, "/"); i >= 0 {
		return e.Label[i+1:]
	}
	return e.Label
}

// CommandLine returns the target's command joined for display
func (t Target) CommandLine() string {
	return strings.Join(t.Command, " ")
}
