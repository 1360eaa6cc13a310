package launcher

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"democat/internal/models"
)

func TestParseTransition(t *testing.T) {
	tests := []struct {
		in      string
		want    Transition
		wantErr bool
	}{
		{"", TransitionNone, false},
		{"none", TransitionNone, false},
		{"fade", TransitionFade, false},
		{"Zoom", TransitionZoom, false},
		{"modernFade", TransitionModernFade, false},
		{"modern-zoom", TransitionModernZoom, false},
		{"scale_up", TransitionScaleUp, false},
		{"SCALEUP", TransitionScaleUp, false},
		{"thumbnail-zoom", TransitionThumbnailZoom, false},
		{"spin", "", true},
	}

	for _, tt := range tests {
		got, err := ParseTransition(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownTransition) {
				t.Errorf("ParseTransition(%q) error = %v, want ErrUnknownTransition", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTransition(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseTransition(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTransitions(t *testing.T) {
	all := Transitions()
	if len(all) != 7 {
		t.Fatalf("Expected 7 presets, got %d", len(all))
	}
	if all[len(all)-1] != TransitionNone {
		t.Errorf("Expected 'none' last in menu order, got %s", all[len(all)-1])
	}
	for _, tr := range all {
		if tr.Description() == "" {
			t.Errorf("%s should have a description", tr)
		}
	}
	if TransitionFade.Description() != "fade-in" {
		t.Errorf("Unexpected fade description: %s", TransitionFade.Description())
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve("", "bogus", "zoom", "fade"); got != TransitionZoom {
		t.Errorf("Expected zoom, got %s", got)
	}
	if got := Resolve("scaleUp", "fade"); got != TransitionScaleUp {
		t.Errorf("Expected explicit choice to win, got %s", got)
	}
	if got := Resolve(); got != TransitionNone {
		t.Errorf("Expected none with no choices, got %s", got)
	}
}

func TestBuildEnv(t *testing.T) {
	target := models.Target{
		ID:  "alert",
		Env: map[string]string{"B": "2", "A": "1"},
	}

	env := buildEnv([]string{"PATH=/bin"}, "App/Alert", target, TransitionZoom)

	want := []string{
		"PATH=/bin",
		"A=1",
		"B=2",
		EnvTransition + "=zoom",
		EnvTarget + "=alert",
		EnvLabel + "=App/Alert",
	}
	if strings.Join(env, "\n") != strings.Join(want, "\n") {
		t.Errorf("Unexpected env:\n%v\nwant:\n%v", env, want)
	}
}

func TestCommand_EmptyCommand(t *testing.T) {
	l := NewExec()
	_, err := l.Command(context.Background(), "App/Empty", models.Target{ID: "empty"}, TransitionNone)
	if !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("Expected ErrEmptyCommand, got %v", err)
	}
}

func TestCommand_SetsDirAndEnv(t *testing.T) {
	dir := t.TempDir()
	l := NewExec()
	cmd, err := l.Command(context.Background(), "App/Echo", models.Target{
		ID:      "echo",
		Command: []string{"echo", "hi"},
		Dir:     dir,
	}, TransitionFade)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if cmd.Dir != dir {
		t.Errorf("Expected dir %s, got %s", dir, cmd.Dir)
	}
	if len(cmd.Args) != 2 || cmd.Args[1] != "hi" {
		t.Errorf("Unexpected args: %v", cmd.Args)
	}
	found := false
	for _, kv := range cmd.Env {
		if kv == EnvTransition+"=fade" {
			found = true
		}
	}
	if !found {
		t.Error("Transition should be exported to the child")
	}
}

type memRecorder struct {
	results []Result
}

func (r *memRecorder) Record(_ context.Context, res Result) error {
	r.results = append(r.results, res)
	return nil
}

func TestLaunch_RunsAndRecords(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	out := filepath.Join(t.TempDir(), "out.txt")
	rec := &memRecorder{}
	l := NewExec(WithRecorder(rec))

	target := models.Target{
		ID:      "writer",
		Command: []string{"sh", "-c", `printf '%s' "$DEMOCAT_TRANSITION" > "$OUT"`},
		Env:     map[string]string{"OUT": out},
	}
	if err := l.Launch(context.Background(), "App/Writer", target, TransitionThumbnailZoom); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Child did not write output: %v", err)
	}
	if string(data) != "thumbnailZoom" {
		t.Errorf("Expected child to see thumbnailZoom, got %q", data)
	}

	if len(rec.results) != 1 {
		t.Fatalf("Expected 1 recorded launch, got %d", len(rec.results))
	}
	if rec.results[0].ExitCode != 0 || rec.results[0].Label != "App/Writer" {
		t.Errorf("Unexpected result: %+v", rec.results[0])
	}
}

func TestLaunch_Stdio(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	var stdout, stderr bytes.Buffer
	l := NewExec(WithStdio(strings.NewReader("ping"), &stdout, &stderr))

	target := models.Target{
		ID:      "echo",
		Command: []string{"sh", "-c", `cat; echo oops >&2`},
	}
	if err := l.Launch(context.Background(), "Echo", target, TransitionNone); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	if stdout.String() != "ping" {
		t.Errorf("Expected stdin echoed to stdout, got %q", stdout.String())
	}
	if stderr.String() != "oops\n" {
		t.Errorf("Expected stderr %q, got %q", "oops\n", stderr.String())
	}
}

func TestLaunch_ExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	rec := &memRecorder{}
	l := NewExec(WithRecorder(rec))

	err := l.Launch(context.Background(), "App/Fail", models.Target{
		ID:      "fail",
		Command: []string{"sh", "-c", "exit 3"},
	}, TransitionNone)
	if err == nil {
		t.Fatal("Expected error from failing demo")
	}
	if !strings.Contains(err.Error(), "App/Fail") {
		t.Errorf("Error should mention the label: %v", err)
	}
	if rec.results[0].ExitCode != 3 {
		t.Errorf("Expected exit code 3, got %d", rec.results[0].ExitCode)
	}
}

func TestIsAvailable(t *testing.T) {
	if IsAvailable(models.Target{}) {
		t.Error("Empty target should not be available")
	}
	if IsAvailable(models.Target{Command: []string{"definitely-not-a-real-binary-xyz"}}) {
		t.Error("Missing binary should not be available")
	}
}
