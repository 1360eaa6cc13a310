package components

import (
	"fmt"
	"strings"
	"time"

	"democat/internal/launcher"
	"democat/internal/ui"
)

// TransitionPicker is a dialog for choosing the transition of the next launch
type TransitionPicker struct {
	Options    []launcher.Transition
	Cursor     int
	Width      int
	Height     int
	Label      string              // Entry the choice applies to
	Saved      launcher.Transition // Stored preference, empty if none
	LastLaunch time.Time
	Visible    bool
}

// NewTransitionPicker creates a new transition picker
func NewTransitionPicker() *TransitionPicker {
	return &TransitionPicker{
		Options: launcher.Transitions(),
		Width:   60,
		Height:  16,
	}
}

// Show opens the picker for label with the cursor on current
func (d *TransitionPicker) Show(label string, current, saved launcher.Transition, lastLaunch time.Time) {
	d.Label = label
	d.Saved = saved
	d.LastLaunch = lastLaunch
	d.Cursor = 0
	for i, t := range d.Options {
		if t == current {
			d.Cursor = i
			break
		}
	}
	d.Visible = true
}

// Hide hides the dialog
func (d *TransitionPicker) Hide() {
	d.Visible = false
}

// IsVisible returns whether the dialog is visible
func (d *TransitionPicker) IsVisible() bool {
	return d.Visible
}

// MoveUp moves cursor up
func (d *TransitionPicker) MoveUp() {
	if d.Cursor > 0 {
		d.Cursor--
	}
}

// MoveDown moves cursor down
func (d *TransitionPicker) MoveDown() {
	if d.Cursor < len(d.Options)-1 {
		d.Cursor++
	}
}

// Selected returns the transition under the cursor
func (d *TransitionPicker) Selected() launcher.Transition {
	if d.Cursor < 0 || d.Cursor >= len(d.Options) {
		return launcher.TransitionNone
	}
	return d.Options[d.Cursor]
}

// View renders the dialog
func (d *TransitionPicker) View() string {
	if !d.Visible {
		return ""
	}

	var b strings.Builder

	b.WriteString(ui.PanelTitleStyle.Render("Transition"))
	b.WriteString("\n")
	b.WriteString(ui.MutedStyle.Render(d.Label))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("-", max(0, d.Width-4))))
	b.WriteString("\n\n")

	for i, t := range d.Options {
		prefix := "  "
		if i == d.Cursor {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%-14s %s", prefix, t, ui.MutedStyle.Render(t.Description()))
		if t == d.Saved {
			line += " " + ui.TransitionStyle.Render("(saved)")
		}

		if i == d.Cursor {
			b.WriteString(ui.SelectedItemStyle.Width(max(0, d.Width-6)).Render(line))
		} else {
			b.WriteString(ui.ItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(ui.MutedStyle.Render("Last launched: " + formatTimeAgo(d.LastLaunch)))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("-", max(0, d.Width-4))))
	b.WriteString("\n")
	b.WriteString(d.renderHelp())

	return ui.DialogStyle.Width(d.Width).Render(b.String())
}

// renderHelp renders the help bar
func (d *TransitionPicker) renderHelp() string {
	items := []string{
		ui.RenderHelpItem("Up/Down", "navigate"),
		ui.RenderHelpItem("Enter", "use once"),
		ui.RenderHelpItem("s", "save"),
		ui.RenderHelpItem("Esc", "cancel"),
	}
	return strings.Join(items, "  ")
}

// formatTimeAgo formats a time as relative time
func formatTimeAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	duration := time.Since(t)

	if duration < time.Minute {
		return "just now"
	} else if duration < time.Hour {
		mins := int(duration.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	} else if duration < 24*time.Hour {
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}

	days := int(duration.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
