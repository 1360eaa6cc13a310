package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		w.Close()
	})
	go w.Run(ctx)
	return w
}

func waitForChange(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("Timed out waiting for change signal")
	}
}

func expectNoChange(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case <-w.Changes():
		t.Fatal("Unexpected change signal")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_File(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(manifest, []byte("entries: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w := startWatcher(t)
	if err := w.AddFile(manifest); err != nil {
		t.Fatalf("AddFile failed: %v", err)
	}

	// Unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	expectNoChange(t, w)

	if err := os.WriteFile(manifest, []byte("entries: [{id: a, command: [a]}]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	waitForChange(t, w)
}

func TestWatcher_DirPatternAndNewSubdir(t *testing.T) {
	root := t.TempDir()

	w := startWatcher(t)
	if err := w.AddDir(root, "**/*.yaml"); err != nil {
		t.Fatalf("AddDir failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	expectNoChange(t, w)

	sub := filepath.Join(root, "graphics")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	// Give the watcher a moment to register the new directory
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(sub, "arcs.yaml"), []byte("entries: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	waitForChange(t, w)
}

func TestWithin(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "catalog")

	tests := []struct {
		path string
		rel  string
		ok   bool
	}{
		{filepath.Join(root, "a.yaml"), "a.yaml", true},
		{filepath.Join(root, "x", "b.yaml"), "x/b.yaml", true},
		{root, "", false},
		{filepath.Join(string(filepath.Separator), "elsewhere", "a.yaml"), "", false},
		{filepath.Join(string(filepath.Separator), "catalog2", "a.yaml"), "", false},
	}

	for _, tt := range tests {
		rel, ok := within(root, tt.path)
		if ok != tt.ok || rel != tt.rel {
			t.Errorf("within(%q) = (%q, %v), want (%q, %v)", tt.path, rel, ok, tt.rel, tt.ok)
		}
	}
}
