package ui

import (
	"strings"
	"testing"
)

func TestGetFileType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"catalog.yaml", "YAML"},
		{"catalog.yml", "YAML"},
		{"catalog.json", "JSON"},
		{"run.sh", "Shell"},
		{"config.toml", "TOML"},
		{"unknown.xyz", "Text"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			result := GetFileType(tt.filename)
			if result != tt.expected {
				t.Errorf("GetFileType(%s) = %s, want %s", tt.filename, result, tt.expected)
			}
		})
	}
}

func TestHighlighter_HighlightLine(t *testing.T) {
	h := NewHighlighter()

	tests := []struct {
		line     string
		filename string
	}{
		{"label: App/Activity/Hello", "entry.yaml"},
		{`{"id": "hello"}`, "entry.json"},
		{"echo hello", "run.sh"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			result := h.HighlightLine(tt.line, tt.filename)
			for _, word := range strings.Fields(tt.line) {
				if !strings.Contains(result, strings.Trim(word, `{}":`)) {
					t.Errorf("Highlighted line should keep %q, got %q", word, result)
				}
			}
		})
	}
}

func TestHighlighter_UnknownFile(t *testing.T) {
	h := NewHighlighter()

	line := "some random content"
	if result := h.HighlightLine(line, "unknown_file"); result != line {
		t.Errorf("Unknown file type should return original line, got %q", result)
	}
}

func TestHighlighter_HighlightLines(t *testing.T) {
	h := NewHighlighter()

	lines := []string{
		"id: hello",
		"label: App/Hello",
		"command:",
		"  - ./hello",
	}

	result := h.HighlightLines(lines, "entry.yaml")
	if len(result) != len(lines) {
		t.Fatalf("HighlightLines should return same number of lines")
	}
	for i, line := range result {
		if line == "" {
			t.Errorf("Line %d should not be empty", i)
		}
	}
}

func TestHighlighter_HighlightCommand(t *testing.T) {
	h := NewHighlighter()

	result := h.HighlightCommand("./gradlew run --args demo")
	if !strings.Contains(result, "gradlew") || !strings.Contains(result, "demo") {
		t.Errorf("Highlighted command should keep its words, got %q", result)
	}
}
