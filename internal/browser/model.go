// Package browser is the interactive catalog browser.
package browser

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"democat/internal/catalog"
	"democat/internal/editor"
	"democat/internal/history"
	"democat/internal/launcher"
	"democat/internal/models"
	"democat/internal/prefs"
	"democat/internal/source"
	"democat/internal/ui"
	"democat/internal/ui/components"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Screen represents the current screen
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenBrowse
	ScreenPreview
	ScreenHelp
)

// Runner starts demos on behalf of the browser. The browser hands the
// terminal to the command and reports back through Finish.
type Runner interface {
	Command(ctx context.Context, label string, target models.Target, t launcher.Transition) (*exec.Cmd, error)
	Finish(ctx context.Context, label string, target models.Target, t launcher.Transition, started time.Time, runErr error) error
}

// LaunchLog looks up past launches
type LaunchLog interface {
	Last(ctx context.Context, label string) (history.Launch, bool, error)
}

// Options wires the browser to its collaborators. Source and Runner are
// required; everything else is optional.
type Options struct {
	Context           context.Context
	Source            source.Source
	Builder           *catalog.Builder
	Runner            Runner
	Prefs             *prefs.Prefs
	History           LaunchLog
	Changes           <-chan struct{} // Reload signals, e.g. from watch.Watcher
	Editor            editor.Editor   // Opens ManifestPath on "e"
	ManifestPath      string
	DefaultTransition launcher.Transition
	Prefix            string // Level to open first
	Title             string // Name of the root level
	Version           string
	Logger            *zap.Logger
}

// Model is the browser's bubbletea model
type Model struct {
	ctx               context.Context
	source            source.Source
	builder           *catalog.Builder
	runner            Runner
	prefs             *prefs.Prefs
	history           LaunchLog
	changes           <-chan struct{}
	editor            editor.Editor
	manifestPath      string
	defaultTransition launcher.Transition
	logger            *zap.Logger
	title             string
	version           string

	entries []models.Entry
	prefix  string

	// UI Components
	list      *components.CatalogList
	preview   *components.EntryPreview
	picker    *components.TransitionPicker
	spinner   spinner.Model
	help      help.Model
	helpVP    viewport.Model
	keys      ui.KeyMap
	textInput textinput.Model

	// State
	screen       Screen
	filtering    bool
	launching    bool
	loaded       bool
	status       string
	statusKind   string
	width        int
	height       int
	previewLabel string
	previewItem  models.ListItem

	// One-shot transitions picked for the next launch, by label
	next map[string]launcher.Transition

	// Last finished launch, for the status bar
	lastLabel string
	lastErr   error
}

// Messages
type entriesLoadedMsg struct {
	entries []models.Entry
	err     error
	reload  bool
}

type catalogChangedMsg struct{}

type editorFinishedMsg struct {
	err error
}

type launchFinishedMsg struct {
	label      string
	target     models.Target
	transition launcher.Transition
	started    time.Time
	err        error
}

// New creates a browser model
func New(opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Builder == nil {
		opts.Builder = &catalog.Builder{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Title == "" {
		opts.Title = "Catalog"
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ui.Primary)

	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 30

	m := &Model{
		ctx:               opts.Context,
		source:            opts.Source,
		builder:           opts.Builder,
		runner:            opts.Runner,
		prefs:             opts.Prefs,
		history:           opts.History,
		changes:           opts.Changes,
		editor:            opts.Editor,
		manifestPath:      opts.ManifestPath,
		defaultTransition: opts.DefaultTransition,
		logger:            opts.Logger,
		title:             opts.Title,
		version:           opts.Version,
		prefix:            opts.Prefix,
		list:              components.NewCatalogList(nil),
		preview:           components.NewEntryPreview(),
		picker:            components.NewTransitionPicker(),
		spinner:           s,
		help:              help.New(),
		helpVP:            viewport.New(76, 18),
		keys:              ui.DefaultKeyMap(),
		textInput:         ti,
		screen:            ScreenLoading,
		status:            "Loading catalog...",
		width:             80,
		height:            24,
		next:              make(map[string]launcher.Transition),
	}
	m.list.Annotate = m.annotate
	m.updatePanelSizes()
	return m
}

// Init starts loading the catalog and listening for changes
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadEntries(false), m.waitForChange())
}

// Prefix returns the level currently shown
func (m *Model) Prefix() string {
	return m.prefix
}

func (m *Model) loadEntries(reload bool) tea.Cmd {
	src := m.source
	ctx := m.ctx
	return func() tea.Msg {
		if src == nil {
			return entriesLoadedMsg{reload: reload}
		}
		entries, err := src.Entries(ctx)
		return entriesLoadedMsg{entries: entries, err: err, reload: reload}
	}
}

func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return catalogChangedMsg{}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updatePanelSizes()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		if m.screen == ScreenPreview {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
		return m, nil

	case spinner.TickMsg:
		if m.screen != ScreenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case entriesLoadedMsg:
		return m.handleEntriesLoaded(msg)

	case catalogChangedMsg:
		m.logger.Debug("catalog changed on disk, reloading")
		return m, tea.Batch(m.loadEntries(true), m.waitForChange())

	case launchFinishedMsg:
		return m.handleLaunchFinished(msg)

	case editorFinishedMsg:
		if msg.err != nil {
			m.setStatus(ui.NotifyError, fmt.Sprintf("Editor failed: %v", msg.err))
			return m, nil
		}
		m.setStatus("", "Reloading catalog...")
		return m, m.loadEntries(true)
	}

	return m, nil
}

func (m *Model) handleEntriesLoaded(msg entriesLoadedMsg) (tea.Model, tea.Cmd) {
	if m.screen == ScreenLoading {
		m.screen = ScreenBrowse
	}

	if msg.err != nil {
		m.logger.Warn("failed to load catalog", zap.Error(msg.err))
		m.setStatus(ui.NotifyError, fmt.Sprintf("Error loading catalog: %v", msg.err))
		return m, nil
	}

	m.entries = msg.entries
	m.settle()
	m.loaded = true

	if msg.reload {
		m.setStatus(ui.NotifyInfo, fmt.Sprintf("Reloaded: %d demos", len(m.entries)))
	} else {
		m.setStatus("", fmt.Sprintf("Loaded %d demos", len(m.entries)))
	}
	return m, nil
}

func (m *Model) handleLaunchFinished(msg launchFinishedMsg) (tea.Model, tea.Cmd) {
	m.launching = false
	err := m.runner.Finish(m.ctx, msg.label, msg.target, msg.transition, msg.started, msg.err)

	m.lastLabel = msg.label
	m.lastErr = err
	if err != nil {
		m.setStatus(ui.NotifyError, fmt.Sprintf("Error: %v", err))
	} else {
		elapsed := time.Since(msg.started).Round(time.Second)
		m.setStatus(ui.NotifySuccess, fmt.Sprintf("%s finished after %s", msg.label, elapsed))
	}
	return m, nil
}

// rebuild shows the children of the current prefix
func (m *Model) rebuild() {
	m.list.SetItems(m.builder.Children(m.entries, m.prefix))
	m.list.Title = m.levelTitle()
}

// settle re-shows the current level after the entries changed. A level
// that no longer has children gives way to its nearest non-empty ancestor.
func (m *Model) settle() {
	current, _ := m.list.Current()
	filter := m.list.Filter

	for m.prefix != "" && len(m.builder.Children(m.entries, m.prefix)) == 0 {
		m.prefix = catalog.Parent(m.prefix)
		filter = ""
	}

	m.rebuild()
	if filter != "" {
		m.list.SetFilter(filter)
	}
	if current.Title != "" {
		m.list.SelectTitle(current.Title)
	}
}

func (m *Model) levelTitle() string {
	if m.prefix == "" {
		return m.title
	}
	return catalog.Base(m.prefix)
}

// label returns the full catalog label of a row at the current level
func (m *Model) label(item models.ListItem) string {
	return catalog.JoinPath(m.prefix, item.Title)
}

// transitionFor resolves the preset the next launch of label will use
func (m *Model) transitionFor(label string, target models.Target) launcher.Transition {
	var saved string
	if m.prefs != nil {
		saved = m.prefs.TransitionFor(label)
	}
	return launcher.Resolve(string(m.next[label]), saved, target.Transition, string(m.defaultTransition))
}

// annotate shows a leaf's transition when it is not the plain default
func (m *Model) annotate(item models.ListItem) string {
	target, ok := item.Target()
	if !ok {
		return ""
	}
	t := m.transitionFor(m.label(item), target)
	if t == launcher.TransitionNone {
		return ""
	}
	return string(t)
}

func (m *Model) setStatus(kind, status string) {
	m.statusKind = kind
	m.status = status
}

func (m *Model) updatePanelSizes() {
	m.list.Width = max(30, m.width-4)
	m.list.Height = max(5, m.height-8)
	m.preview.SetSize(max(30, m.width-4), max(8, m.height-6))
	m.helpVP.Width = max(20, m.width-4)
	m.helpVP.Height = max(5, m.height-6)
	m.help.Width = m.width
}

// saveLastPrefix remembers where the user was for the next session
func (m *Model) saveLastPrefix() {
	if m.prefs == nil {
		return
	}
	m.prefs.LastPrefix = m.prefix
	if err := m.prefs.Save(); err != nil {
		m.logger.Warn("failed to save preferences", zap.Error(err))
	}
}
