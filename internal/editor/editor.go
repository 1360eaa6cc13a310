// Package editor opens catalog manifests in the user's editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Editor interface defines operations for editor integration
type Editor interface {
	// Name returns the display name of the editor
	Name() string

	// IsInstalled checks if the editor is available on the system
	IsInstalled() bool

	// Command returns a process that edits path and exits once the user
	// is done with it
	Command(path string) *exec.Cmd
}

// Config holds editor configuration
type Config struct {
	// Editor specifies which editor to use: "auto", "code", "cursor", "zed",
	// or any command line such as "vim -u NONE"
	Editor string `yaml:"editor"`

	// Priority order for auto-detection after $VISUAL and $EDITOR
	Priority []string `yaml:"editor_priority"`
}

// DefaultConfig returns the default editor configuration
func DefaultConfig() *Config {
	return &Config{
		Editor:   "auto",
		Priority: []string{"cursor", "code", "zed"},
	}
}

// editorsByName maps editor names to constructor functions
var editorsByName = map[string]func() Editor{
	"code":   NewVSCode,
	"cursor": NewCursor,
	"zed":    NewZed,
}

// fallbacks are tried when nothing else is configured or installed
var fallbacks = []string{"nano", "vi"}

// Detect finds an installed editor. An explicit Editor wins; "auto" tries
// $VISUAL, $EDITOR, the priority list and finally nano or vi.
func Detect(cfg *Config) (Editor, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// If specific editor is requested, try that first
	if cfg.Editor != "" && cfg.Editor != "auto" {
		e := byName(cfg.Editor)
		if e == nil {
			return nil, fmt.Errorf("invalid editor %q", cfg.Editor)
		}
		if !e.IsInstalled() {
			return nil, fmt.Errorf("editor %s is not installed", e.Name())
		}
		return e, nil
	}

	for _, env := range []string{"VISUAL", "EDITOR"} {
		if e := NewTerminal(os.Getenv(env)); e != nil && e.IsInstalled() {
			return e, nil
		}
	}

	// Auto-detect based on priority
	priority := cfg.Priority
	if len(priority) == 0 {
		priority = DefaultConfig().Priority
	}
	for _, name := range priority {
		if e := byName(name); e != nil && e.IsInstalled() {
			return e, nil
		}
	}

	for _, name := range fallbacks {
		if e := NewTerminal(name); e.IsInstalled() {
			return e, nil
		}
	}

	return nil, fmt.Errorf("no editor found (set $EDITOR or install VS Code, Cursor, or Zed)")
}

// byName returns a known GUI editor or a terminal editor for a command line
func byName(name string) Editor {
	if constructor, ok := editorsByName[name]; ok {
		return constructor()
	}
	return NewTerminal(name)
}

// isCommandAvailable checks if a command exists in PATH
func isCommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// gui is an editor that forks into its own window. --wait keeps the process
// alive until the file's tab is closed.
type gui struct {
	name    string
	command string
}

// NewVSCode creates a new VS Code editor instance
func NewVSCode() Editor {
	return &gui{name: "VS Code", command: "code"}
}

// NewCursor creates a new Cursor editor instance
func NewCursor() Editor {
	return &gui{name: "Cursor", command: "cursor"}
}

// NewZed creates a new Zed editor instance
func NewZed() Editor {
	return &gui{name: "Zed", command: "zed"}
}

func (e *gui) Name() string {
	return e.name
}

func (e *gui) IsInstalled() bool {
	return isCommandAvailable(e.command)
}

// Command: code --wait FILE
func (e *gui) Command(path string) *exec.Cmd {
	return exec.Command(e.command, "--wait", path)
}

// terminal is an editor that runs in the current terminal
type terminal struct {
	argv []string
}

// NewTerminal creates an editor from a command line such as "vim" or
// "emacs -nw". It returns nil for a blank command line.
func NewTerminal(commandLine string) Editor {
	argv := strings.Fields(commandLine)
	if len(argv) == 0 {
		return nil
	}
	return &terminal{argv: argv}
}

func (e *terminal) Name() string {
	return e.argv[0]
}

func (e *terminal) IsInstalled() bool {
	return isCommandAvailable(e.argv[0])
}

func (e *terminal) Command(path string) *exec.Cmd {
	args := append(append([]string(nil), e.argv[1:]...), path)
	return exec.Command(e.argv[0], args...)
}
