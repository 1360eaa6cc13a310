package components

import (
	"strings"
	"testing"
	"time"

	"democat/internal/launcher"
)

func TestNewTransitionPicker(t *testing.T) {
	d := NewTransitionPicker()

	if d.IsVisible() {
		t.Error("Picker should start hidden")
	}
	if len(d.Options) != len(launcher.Transitions()) {
		t.Errorf("Picker should offer every transition, got %d", len(d.Options))
	}
	if d.View() != "" {
		t.Error("Hidden picker should render nothing")
	}
}

func TestTransitionPicker_ShowSelectsCurrent(t *testing.T) {
	d := NewTransitionPicker()

	d.Show("App/Alarm", launcher.TransitionScaleUp, "", time.Time{})
	if !d.IsVisible() {
		t.Fatal("Picker should be visible after Show")
	}
	if d.Selected() != launcher.TransitionScaleUp {
		t.Errorf("Cursor should start on current transition, got %s", d.Selected())
	}

	d.Show("App/Alarm", "unknown", "", time.Time{})
	if d.Cursor != 0 {
		t.Errorf("Unknown current should put cursor at 0, got %d", d.Cursor)
	}

	d.Hide()
	if d.IsVisible() {
		t.Error("Picker should be hidden after Hide")
	}
}

func TestTransitionPicker_Movement(t *testing.T) {
	d := NewTransitionPicker()
	d.Show("App/Alarm", d.Options[0], "", time.Time{})

	d.MoveUp()
	if d.Cursor != 0 {
		t.Errorf("Cursor should stay at 0, got %d", d.Cursor)
	}
	for range d.Options {
		d.MoveDown()
	}
	if d.Cursor != len(d.Options)-1 {
		t.Errorf("Cursor should stop at last option, got %d", d.Cursor)
	}
	if d.Selected() != d.Options[len(d.Options)-1] {
		t.Error("Selected should follow the cursor")
	}
}

func TestTransitionPicker_View(t *testing.T) {
	d := NewTransitionPicker()
	d.Show("App/Alarm", launcher.TransitionFade, launcher.TransitionZoom, time.Now().Add(-2*time.Hour))

	view := d.View()
	for _, want := range []string{"App/Alarm", "fade", launcher.TransitionFade.Description(), "(saved)", "2 hours ago"} {
		if !strings.Contains(view, want) {
			t.Errorf("View should contain %q", want)
		}
	}
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Now()
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, "never"},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-1 * time.Minute), "1 minute ago"},
		{now.Add(-5 * time.Minute), "5 minutes ago"},
		{now.Add(-1 * time.Hour), "1 hour ago"},
		{now.Add(-25 * time.Hour), "1 day ago"},
		{now.Add(-72 * time.Hour), "3 days ago"},
	}

	for _, tt := range tests {
		if got := formatTimeAgo(tt.t); got != tt.want {
			t.Errorf("formatTimeAgo(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}
