package prefs

import (
	"os"
	"path/filepath"

	"democat/internal/launcher"

	"gopkg.in/yaml.v3"
)

// Prefs holds per-user browsing preferences
type Prefs struct {
	LastPrefix  string                         `yaml:"last_prefix"`
	Transitions map[string]launcher.Transition `yaml:"transitions"` // label -> preset

	path string
}

// fileName is the name of the preferences file
const fileName = "prefs.yaml"

// DefaultPath returns the default preferences path
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "democat", fileName)
}

// Default returns empty preferences bound to path
func Default(path string) *Prefs {
	if path == "" {
		path = DefaultPath()
	}
	return &Prefs{
		Transitions: make(map[string]launcher.Transition),
		path:        path,
	}
}

// Load loads preferences from path. A missing file yields defaults.
func Load(path string) (*Prefs, error) {
	p := Default(path)

	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, err
	}

	// Ensure map is initialized
	if p.Transitions == nil {
		p.Transitions = make(map[string]launcher.Transition)
	}

	// Drop presets that no longer exist
	for label, t := range p.Transitions {
		if _, err := launcher.ParseTransition(string(t)); err != nil {
			delete(p.Transitions, label)
		}
	}

	return p, nil
}

// Path returns the file the preferences are saved to
func (p *Prefs) Path() string {
	return p.path
}

// Save writes preferences to disk
func (p *Prefs) Save() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}

	return os.WriteFile(p.path, data, 0644)
}

// SetTransition remembers a preset for label
func (p *Prefs) SetTransition(label string, t launcher.Transition) {
	p.Transitions[label] = t
}

// ClearTransition forgets the preset for label
func (p *Prefs) ClearTransition(label string) {
	delete(p.Transitions, label)
}

// TransitionFor returns the remembered preset for label, or "" when unset
func (p *Prefs) TransitionFor(label string) string {
	return string(p.Transitions[label])
}
