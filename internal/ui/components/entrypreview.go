package components

import (
	"fmt"
	"strings"

	"democat/internal/launcher"
	"democat/internal/models"
	"democat/internal/ui"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// EntryPreview shows an entry's manifest definition with syntax highlighting
type EntryPreview struct {
	viewport    viewport.Model
	highlighter *ui.Highlighter

	// Entry info
	Label      string
	Command    string
	Transition launcher.Transition
	Available  bool
	TotalLines int

	// Dimensions
	Width  int
	Height int

	// Styles
	lineNumStyle lipgloss.Style
	headerStyle  lipgloss.Style
	infoStyle    lipgloss.Style
	borderStyle  lipgloss.Style
}

// NewEntryPreview creates a new EntryPreview with viewport
func NewEntryPreview() *EntryPreview {
	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &EntryPreview{
		viewport:    vp,
		highlighter: ui.NewHighlighter(),
		Width:       80,
		Height:      20,
		lineNumStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")).
			Width(4).
			Align(lipgloss.Right),
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89b4fa")),
		infoStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")),
		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#89b4fa")).
			Padding(0, 1),
	}
}

// SetSize updates the viewport dimensions
func (p *EntryPreview) SetSize(width, height int) {
	p.Width = width
	p.Height = height

	// Account for header (4 lines) and border (2 lines)
	p.viewport.Width = max(20, width-4)
	p.viewport.Height = max(5, height-6)
}

// Load renders entry as YAML. t is the transition the next launch would use.
func (p *EntryPreview) Load(entry models.Entry, t launcher.Transition) error {
	data, err := yaml.Marshal(entry.Definition())
	if err != nil {
		return fmt.Errorf("render %s: %w", entry.Label, err)
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	highlighted := p.highlighter.HighlightLines(lines, "entry.yaml")

	var b strings.Builder
	for i, line := range highlighted {
		b.WriteString(p.lineNumStyle.Render(fmt.Sprintf("%d", i+1)) + " │ " + line)
		if i < len(highlighted)-1 {
			b.WriteString("\n")
		}
	}

	p.Label = entry.Label
	p.Command = entry.Target.CommandLine()
	p.Transition = t
	p.Available = launcher.IsAvailable(entry.Target)
	p.TotalLines = len(lines)
	p.viewport.SetContent(b.String())
	p.viewport.GotoTop()

	return nil
}

// Update handles messages for viewport scrolling
func (p *EntryPreview) Update(msg tea.Msg) (*EntryPreview, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the preview
func (p *EntryPreview) View() string {
	var b strings.Builder

	b.WriteString(p.headerStyle.Render(p.Label) + "\n")

	command := p.highlighter.HighlightCommand(p.Command)
	if !p.Available {
		command += " " + ui.UnavailableStyle.Render("(not found)")
	}
	b.WriteString(p.infoStyle.Render("$ ") + command + "\n")

	transition := p.Transition
	if transition == "" {
		transition = launcher.TransitionNone
	}
	b.WriteString(p.infoStyle.Render("transition: ") + ui.TransitionStyle.Render(transition.String()) + "\n")

	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color("#313244")).
		Render(strings.Repeat("─", max(0, p.Width-4))) + "\n")

	b.WriteString(p.viewport.View())

	if p.TotalLines > p.viewport.Height {
		scrollInfo := fmt.Sprintf("─── %.0f%% ───", p.viewport.ScrollPercent()*100)
		b.WriteString("\n" + p.infoStyle.Render(scrollInfo))
	}

	return p.borderStyle.
		Width(p.Width).
		Height(p.Height).
		Render(b.String())
}

// ScrollUp scrolls up one line
func (p *EntryPreview) ScrollUp() {
	p.viewport.LineUp(1)
}

// ScrollDown scrolls down one line
func (p *EntryPreview) ScrollDown() {
	p.viewport.LineDown(1)
}
