package components

import (
	"fmt"
	"strings"

	"democat/internal/models"
	"democat/internal/ui"
)

// CatalogList is a list component for one level of the catalog
type CatalogList struct {
	Items   []models.ListItem
	Cursor  int
	Width   int
	Height  int
	Focused bool
	Title   string
	Filter  string

	// Annotate returns a short badge shown after a row, such as the
	// transition a leaf will launch with. Optional.
	Annotate func(item models.ListItem) string

	visible []int // indexes into Items that pass Filter
}

// NewCatalogList creates a new catalog list
func NewCatalogList(items []models.ListItem) *CatalogList {
	l := &CatalogList{
		Width:   40,
		Height:  15,
		Focused: true,
		Title:   "Catalog",
	}
	l.SetItems(items)
	return l
}

// SetItems replaces the rows and resets the cursor
func (l *CatalogList) SetItems(items []models.ListItem) {
	l.Items = items
	l.Cursor = 0
	l.refilter()
}

// SetFilter restricts the visible rows to titles containing filter,
// ignoring case
func (l *CatalogList) SetFilter(filter string) {
	l.Filter = filter
	l.refilter()
	if l.Cursor >= len(l.visible) {
		l.Cursor = max(0, len(l.visible)-1)
	}
}

// SelectTitle moves the cursor to the first visible row with the given title
func (l *CatalogList) SelectTitle(title string) bool {
	for i, idx := range l.visible {
		if l.Items[idx].Title == title {
			l.Cursor = i
			return true
		}
	}
	return false
}

func (l *CatalogList) refilter() {
	l.visible = l.visible[:0]
	needle := strings.ToLower(l.Filter)
	for i, item := range l.Items {
		if needle == "" || strings.Contains(strings.ToLower(item.Title), needle) {
			l.visible = append(l.visible, i)
		}
	}
}

// MoveUp moves cursor up
func (l *CatalogList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves cursor down
func (l *CatalogList) MoveDown() {
	if l.Cursor < len(l.visible)-1 {
		l.Cursor++
	}
}

// PageUp moves cursor up by a page
func (l *CatalogList) PageUp() {
	l.Cursor -= l.pageSize()
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// PageDown moves cursor down by a page
func (l *CatalogList) PageDown() {
	l.Cursor += l.pageSize()
	if l.Cursor >= len(l.visible) {
		l.Cursor = max(0, len(l.visible)-1)
	}
}

func (l *CatalogList) pageSize() int {
	pageSize := l.Height - 3
	if pageSize < 1 {
		pageSize = 10
	}
	return pageSize
}

// GoToFirst moves cursor to the first item
func (l *CatalogList) GoToFirst() {
	l.Cursor = 0
}

// GoToLast moves cursor to the last item
func (l *CatalogList) GoToLast() {
	if len(l.visible) > 0 {
		l.Cursor = len(l.visible) - 1
	}
}

// Current returns the row under the cursor
func (l *CatalogList) Current() (models.ListItem, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.visible) {
		return models.ListItem{}, false
	}
	return l.Items[l.visible[l.Cursor]], true
}

// VisibleItems returns the rows that pass the filter, in order
func (l *CatalogList) VisibleItems() []models.ListItem {
	items := make([]models.ListItem, len(l.visible))
	for i, idx := range l.visible {
		items[i] = l.Items[idx]
	}
	return items
}

// View renders the list
func (l *CatalogList) View() string {
	var b strings.Builder

	title := l.Title
	if l.Filter != "" {
		title = fmt.Sprintf("%s (%d/%d)", l.Title, len(l.visible), len(l.Items))
	} else if len(l.Items) > 0 {
		title = fmt.Sprintf("%s (%d)", l.Title, len(l.Items))
	}
	b.WriteString(ui.PanelTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(0, l.Width-2))))
	b.WriteString("\n")

	if len(l.visible) == 0 {
		if l.Filter != "" {
			b.WriteString(ui.ItemStyle.Render("No matches"))
		} else {
			b.WriteString(ui.ItemStyle.Render("Nothing here"))
		}
		return l.wrapInPanel(b.String())
	}

	visibleHeight := max(1, l.Height-3)
	startIdx := 0
	if l.Cursor >= visibleHeight {
		startIdx = l.Cursor - visibleHeight + 1
	}
	endIdx := min(startIdx+visibleHeight, len(l.visible))

	if startIdx > 0 {
		b.WriteString(ui.MutedStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(l.renderItem(l.Items[l.visible[i]], i == l.Cursor))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	if endIdx < len(l.visible) {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render("  ↓ more"))
	}

	return l.wrapInPanel(b.String())
}

// renderItem renders a single row
func (l *CatalogList) renderItem(item models.ListItem, isCursor bool) string {
	name := item.Title
	maxNameLen := l.Width - 20
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len([]rune(name)) > maxNameLen {
		name = string([]rune(name)[:maxNameLen-3]) + "..."
	}

	var content string
	if item.IsFolder() {
		content = "▸ " + ui.FolderStyle.Render(name+"/")
	} else {
		content = "  " + ui.LeafStyle.Render(name)
	}
	if l.Annotate != nil {
		if badge := l.Annotate(item); badge != "" {
			content += " " + ui.TransitionStyle.Render(badge)
		}
	}

	if isCursor && l.Focused {
		return ui.SelectedItemStyle.Width(max(0, l.Width-4)).Render(content)
	}
	return ui.ItemStyle.Render(content)
}

// wrapInPanel wraps content in a panel border
func (l *CatalogList) wrapInPanel(content string) string {
	style := ui.PanelStyle
	if l.Focused {
		style = ui.ActivePanelStyle
	}
	return style.Width(l.Width).Height(l.Height).Render(content)
}
