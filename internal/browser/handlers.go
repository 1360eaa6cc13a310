package browser

import (
	"fmt"
	"time"

	"democat/internal/catalog"
	"democat/internal/launcher"
	"democat/internal/models"
	"democat/internal/ui"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker.IsVisible() {
		return m.handlePickerKeys(msg)
	}

	switch m.screen {
	case ScreenLoading:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	case ScreenPreview:
		return m.handlePreviewKeys(msg)
	case ScreenHelp:
		if key.Matches(msg, m.keys.Escape, m.keys.Help, m.keys.Quit) {
			m.screen = ScreenBrowse
			return m, nil
		}
		// Forward to viewport for scrolling
		var cmd tea.Cmd
		m.helpVP, cmd = m.helpVP.Update(msg)
		return m, cmd
	}

	if m.filtering {
		return m.handleFilterKeys(msg)
	}

	return m.handleBrowseKeys(msg)
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveLastPrefix()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVP.SetContent(m.helpContent())
		m.helpVP.GotoTop()
		m.screen = ScreenHelp
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.list.Filter != "" {
			m.list.SetFilter("")
			m.setStatus("", "Filter cleared")
			return m, nil
		}
		return m.goBack()

	case key.Matches(msg, m.keys.Back):
		return m.goBack()

	case key.Matches(msg, m.keys.Up):
		m.list.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.list.MoveDown()
	case key.Matches(msg, m.keys.PageUp):
		m.list.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.list.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.list.GoToFirst()
	case key.Matches(msg, m.keys.End):
		m.list.GoToLast()

	case key.Matches(msg, m.keys.Open):
		item, ok := m.list.Current()
		if !ok {
			return m, nil
		}
		return m.activate(item)

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.textInput.SetValue(m.list.Filter)
		m.textInput.CursorEnd()
		m.textInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Preview):
		return m.handlePreview()

	case key.Matches(msg, m.keys.Transition):
		return m.handleTransition()

	case key.Matches(msg, m.keys.Reload):
		m.setStatus("", "Reloading catalog...")
		return m, m.loadEntries(true)

	case key.Matches(msg, m.keys.Edit):
		return m.handleEdit()
	}

	return m, nil
}

// activate dispatches a row: folders descend, leaves launch
func (m *Model) activate(item models.ListItem) (tea.Model, tea.Cmd) {
	switch action := item.Action.(type) {
	case models.Descend:
		m.prefix = action.Prefix
		m.clearFilter()
		m.rebuild()
		m.setStatus("", "")
		return m, nil
	case models.Leaf:
		return m.launch(m.label(item), action.Target)
	}
	return m, nil
}

// goBack shows the parent level with the cursor on the folder just left
func (m *Model) goBack() (tea.Model, tea.Cmd) {
	if m.prefix == "" {
		return m, nil
	}
	left := catalog.Base(m.prefix)
	m.prefix = catalog.Parent(m.prefix)
	m.clearFilter()
	m.rebuild()
	m.list.SelectTitle(left)
	return m, nil
}

// clearFilter drops the filter of the level being left
func (m *Model) clearFilter() {
	m.textInput.SetValue("")
	m.list.SetFilter("")
}

// launch hands the terminal to the demo and waits for it to exit
func (m *Model) launch(label string, target models.Target) (tea.Model, tea.Cmd) {
	if m.launching {
		return m, nil
	}
	if m.runner == nil {
		m.setStatus(ui.NotifyError, "Error: no launcher configured")
		return m, nil
	}

	t := m.transitionFor(label, target)
	cmd, err := m.runner.Command(m.ctx, label, target, t)
	if err != nil {
		m.setStatus(ui.NotifyError, fmt.Sprintf("Error: %v", err))
		return m, nil
	}

	delete(m.next, label)
	m.launching = true
	m.setStatus("", fmt.Sprintf("Launching %s with %s transition...", label, t.Description()))

	started := time.Now()
	return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
		return launchFinishedMsg{
			label:      label,
			target:     target,
			transition: t,
			started:    started,
			err:        err,
		}
	})
}

// handleEdit hands the terminal to the editor; the catalog is reloaded
// when it exits
func (m *Model) handleEdit() (tea.Model, tea.Cmd) {
	if m.editor == nil || m.manifestPath == "" {
		m.setStatus(ui.NotifyWarning, "No editor configured (set $EDITOR)")
		return m, nil
	}

	m.logger.Info("opening manifest", zap.String("editor", m.editor.Name()), zap.String("path", m.manifestPath))
	m.setStatus("", fmt.Sprintf("Editing %s in %s...", m.manifestPath, m.editor.Name()))
	return m, tea.ExecProcess(m.editor.Command(m.manifestPath), func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func (m *Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.saveLastPrefix()
		return m, tea.Quit

	case tea.KeyEsc:
		m.filtering = false
		m.textInput.Blur()
		m.textInput.SetValue("")
		m.list.SetFilter("")
		m.setStatus("", "Filter cancelled")
		return m, nil

	case tea.KeyEnter:
		m.filtering = false
		m.textInput.Blur()
		if m.list.Filter == "" {
			m.setStatus("", "")
		} else {
			m.setStatus("", fmt.Sprintf("Showing %d matching", len(m.list.VisibleItems())))
		}
		return m, nil

	case tea.KeyUp:
		m.list.MoveUp()
		return m, nil

	case tea.KeyDown:
		m.list.MoveDown()
		return m, nil

	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		m.list.SetFilter(m.textInput.Value())
		return m, cmd
	}
}

func (m *Model) handlePreview() (tea.Model, tea.Cmd) {
	item, ok := m.list.Current()
	if !ok {
		return m, nil
	}
	target, ok := item.Target()
	if !ok {
		m.setStatus(ui.NotifyWarning, "Preview shows demos, not folders")
		return m, nil
	}

	label := m.label(item)
	entry := models.Entry{Label: label, Target: target}
	if err := m.preview.Load(entry, m.transitionFor(label, target)); err != nil {
		m.setStatus(ui.NotifyError, fmt.Sprintf("Error: %v", err))
		return m, nil
	}

	m.previewLabel = label
	m.previewItem = item
	m.screen = ScreenPreview
	return m, nil
}

func (m *Model) handlePreviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape, m.keys.Preview, m.keys.Quit):
		m.screen = ScreenBrowse
		return m, nil
	case msg.Type == tea.KeyEnter:
		m.screen = ScreenBrowse
		target, _ := m.previewItem.Target()
		return m.launch(m.previewLabel, target)
	case key.Matches(msg, m.keys.Transition):
		m.screen = ScreenBrowse
		return m.handleTransition()
	case key.Matches(msg, m.keys.Up):
		m.preview.ScrollUp()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.preview.ScrollDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m *Model) handleTransition() (tea.Model, tea.Cmd) {
	item, ok := m.list.Current()
	if !ok {
		return m, nil
	}
	target, ok := item.Target()
	if !ok {
		m.setStatus(ui.NotifyWarning, "Transitions apply to demos, not folders")
		return m, nil
	}

	label := m.label(item)
	var saved launcher.Transition
	if m.prefs != nil {
		saved = launcher.Transition(m.prefs.TransitionFor(label))
	}

	var lastLaunch time.Time
	if m.history != nil {
		last, found, err := m.history.Last(m.ctx, label)
		if err != nil {
			m.logger.Debug("failed to read launch history", zap.String("label", label), zap.Error(err))
		} else if found {
			lastLaunch = last.StartedAt
		}
	}

	m.picker.Show(label, m.transitionFor(label, target), saved, lastLaunch)
	return m, nil
}

func (m *Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	label := m.picker.Label

	switch {
	case key.Matches(msg, m.keys.Escape, m.keys.Quit), msg.Type == tea.KeyLeft, msg.Type == tea.KeyBackspace:
		m.picker.Hide()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.picker.MoveUp()

	case key.Matches(msg, m.keys.Down):
		m.picker.MoveDown()

	case msg.Type == tea.KeyEnter:
		t := m.picker.Selected()
		m.next[label] = t
		m.picker.Hide()
		m.setStatus(ui.NotifyInfo, fmt.Sprintf("Next launch of %s uses %s", label, t))

	case key.Matches(msg, m.keys.SavePref):
		t := m.picker.Selected()
		m.picker.Hide()
		delete(m.next, label)
		if m.prefs == nil {
			m.setStatus(ui.NotifyWarning, "Preferences are not available")
			return m, nil
		}
		m.prefs.SetTransition(label, t)
		if err := m.prefs.Save(); err != nil {
			m.setStatus(ui.NotifyError, fmt.Sprintf("Error saving preference: %v", err))
			return m, nil
		}
		m.setStatus(ui.NotifySuccess, fmt.Sprintf("%s now launches with %s", label, t))
	}

	return m, nil
}
