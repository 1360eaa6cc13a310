package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestColors(t *testing.T) {
	colors := []lipgloss.Color{
		Primary, Secondary, Success, Warning, Error,
		Muted, Foreground, Border, Selected,
	}

	for _, c := range colors {
		if c == "" {
			t.Error("Color should not be empty")
		}
	}
}

func TestStylesRender(t *testing.T) {
	styles := map[string]lipgloss.Style{
		"AppStyle":          AppStyle,
		"HeaderStyle":       HeaderStyle,
		"TitleStyle":        TitleStyle,
		"PanelStyle":        PanelStyle,
		"ActivePanelStyle":  ActivePanelStyle,
		"ItemStyle":         ItemStyle,
		"SelectedItemStyle": SelectedItemStyle,
		"FolderStyle":       FolderStyle,
		"LeafStyle":         LeafStyle,
		"UnavailableStyle":  UnavailableStyle,
		"TransitionStyle":   TransitionStyle,
		"StatusBarStyle":    StatusBarStyle,
		"HelpBarStyle":      HelpBarStyle,
		"CategoryStyle":     CategoryStyle,
		"MutedStyle":        MutedStyle,
		"DialogStyle":       DialogStyle,
	}

	for name, style := range styles {
		if !strings.Contains(style.Render("content"), "content") {
			t.Errorf("%s should render content", name)
		}
	}
}

func TestRenderHelpItem(t *testing.T) {
	rendered := RenderHelpItem("q", "quit")
	if !strings.Contains(rendered, "q") || !strings.Contains(rendered, "quit") {
		t.Errorf("RenderHelpItem should contain key and description, got %q", rendered)
	}
}

func TestRenderBreadcrumb(t *testing.T) {
	root := RenderBreadcrumb("Catalog", nil)
	if !strings.Contains(root, "Catalog") {
		t.Errorf("Root breadcrumb should contain root name, got %q", root)
	}

	nested := RenderBreadcrumb("Catalog", []string{"App", "Activity"})
	for _, want := range []string{"Catalog", "App", "Activity", "›"} {
		if !strings.Contains(nested, want) {
			t.Errorf("Breadcrumb should contain %q, got %q", want, nested)
		}
	}
	if strings.Index(nested, "App") > strings.Index(nested, "Activity") {
		t.Error("Breadcrumb segments should keep their order")
	}
}

func TestRenderNotification(t *testing.T) {
	tests := []struct {
		msgType string
		icon    string
	}{
		{NotifySuccess, "✓"},
		{NotifyError, "✗"},
		{NotifyWarning, "⚠"},
		{NotifyInfo, "ℹ"},
		{"other", "•"},
	}

	for _, tt := range tests {
		t.Run(tt.msgType, func(t *testing.T) {
			result := RenderNotification(tt.msgType, "launched")
			if !strings.Contains(result, tt.icon) {
				t.Errorf("Expected icon %s in %q", tt.icon, result)
			}
			if !strings.Contains(result, "launched") {
				t.Errorf("Expected message in %q", result)
			}
		})
	}
}
