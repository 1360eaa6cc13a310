package browser

import (
	"fmt"
	"strings"

	"democat/internal/catalog"
	"democat/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current screen
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.screen {
	case ScreenLoading:
		content := lipgloss.NewStyle().
			Width(max(0, m.width-2)).
			Height(max(0, m.height-6)).
			Align(lipgloss.Center, lipgloss.Center).
			Render(m.spinner.View() + " Loading catalog...")
		b.WriteString(content)

	case ScreenPreview:
		b.WriteString(m.preview.View())

	case ScreenHelp:
		b.WriteString(m.helpVP.View())

	default:
		if m.picker.IsVisible() {
			b.WriteString(lipgloss.Place(
				max(0, m.width-2), m.list.Height,
				lipgloss.Center, lipgloss.Center,
				m.picker.View(),
			))
		} else {
			b.WriteString(m.list.View())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return ui.AppStyle.Render(b.String())
}

func (m *Model) renderHeader() string {
	title := ui.TitleStyle.Render("democat")
	ver := ""
	if m.version != "" {
		ver = "  " + ui.VersionStyle.Render(m.version)
	}
	crumb := ui.RenderBreadcrumb(m.title, catalog.SplitPath(m.prefix))
	return ui.HeaderStyle.Render(title + ver + "  " + crumb)
}

func (m *Model) renderStatusBar() string {
	styledStatus := ui.StatusTextStyle.Render(m.status)
	if m.statusKind != "" {
		styledStatus = ui.RenderNotification(m.statusKind, m.status)
	}

	var stats []string
	stats = append(stats, fmt.Sprintf("%d demos", len(m.entries)))
	if m.lastLabel != "" {
		mark := ui.SuccessNotifyStyle.UnsetBackground().Render("✓")
		if m.lastErr != nil {
			mark = ui.ErrorNotifyStyle.UnsetBackground().Render("✗")
		}
		stats = append(stats, "last: "+catalog.Base(m.lastLabel)+" "+mark)
	}

	if m.status == "" {
		return ui.StatusBarStyle.Render(strings.Join(stats, "  •  "))
	}
	return ui.StatusBarStyle.Render(styledStatus + "  •  " + strings.Join(stats, "  •  "))
}

func (m *Model) renderHelpBar() string {
	switch {
	case m.screen == ScreenLoading:
		return ui.HelpBarStyle.Render(ui.RenderHelpItem("q", "quit"))

	case m.picker.IsVisible():
		return ""

	case m.screen == ScreenPreview:
		items := []string{
			ui.RenderHelpItem("↑/↓", "scroll"),
			ui.RenderHelpItem("enter", "launch"),
			ui.RenderHelpItem("t", "transition"),
			ui.RenderHelpItem("esc", "back"),
		}
		return ui.HelpBarStyle.Render(strings.Join(items, "  "))

	case m.screen == ScreenHelp:
		return ui.HelpBarStyle.Render(ui.RenderHelpItem("esc/?", "close"))

	case m.filtering:
		items := []string{
			ui.RenderHelpItem("enter", "apply"),
			ui.RenderHelpItem("esc", "cancel"),
		}
		return ui.HelpBarStyle.Render(m.textInput.View() + "  " + strings.Join(items, "  "))
	}

	return ui.HelpBarStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// helpContent lists every binding grouped like KeyMap.FullHelp
func (m *Model) helpContent() string {
	sections := []string{"Navigation", "Catalog", "Launch", "General"}

	var b strings.Builder
	for i, group := range m.keys.FullHelp() {
		if i < len(sections) {
			b.WriteString(ui.CategoryStyle.Render(sections[i]))
			b.WriteString("\n")
		}
		for _, binding := range group {
			h := binding.Help()
			b.WriteString("  " + ui.RenderHelpItem(fmt.Sprintf("%-10s", h.Key), h.Desc) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(ui.MutedStyle.Render("Transitions pick how a demo is opened. The launched process sees it as $DEMOCAT_TRANSITION."))
	return b.String()
}
