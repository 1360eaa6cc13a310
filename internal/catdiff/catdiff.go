// Package catdiff compares two catalogs line by line.
package catdiff

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"democat/internal/models"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is how many unchanged lines surround each hunk
const contextLines = 3

// LineType represents the type of diff operation
type LineType int

const (
	LineEqual LineType = iota
	LineInsert
	LineDelete
)

// Line is a single line in the diff
type Line struct {
	Type    LineType
	Content string
}

// Hunk is a group of changes with surrounding context
type Hunk struct {
	Lines []Line
}

// Result is the diff between two catalogs
type Result struct {
	OldName string
	NewName string
	Hunks   []Hunk
	Added   int
	Removed int
}

// Render formats a catalog as one sorted line per entry
func Render(entries []models.Entry) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := e.Label + " -> " + e.Target.ID
		if cmd := e.Target.CommandLine(); cmd != "" {
			line += " (" + cmd + ")"
		}
		if e.Target.Transition != "" {
			line += " [" + e.Target.Transition + "]"
		}
		lines = append(lines, line)
	}
	sort.Strings(lines)
	return lines
}

// Compare diffs two catalogs
func Compare(oldName string, oldEntries []models.Entry, newName string, newEntries []models.Entry) *Result {
	result := &Result{OldName: oldName, NewName: newName}

	oldText := joinLines(Render(oldEntries))
	newText := joinLines(Render(newEntries))
	if oldText == newText {
		return result
	}

	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var all []Line
	for _, d := range diffs {
		lineType := LineEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			lineType = LineInsert
		case diffmatchpatch.DiffDelete:
			lineType = LineDelete
		}
		for _, text := range splitLines(d.Text) {
			all = append(all, Line{Type: lineType, Content: text})
			switch lineType {
			case LineInsert:
				result.Added++
			case LineDelete:
				result.Removed++
			}
		}
	}

	result.Hunks = groupHunks(all)
	return result
}

// groupHunks keeps changed lines plus contextLines of context on each side,
// merging changes whose context overlaps
func groupHunks(lines []Line) []Hunk {
	keep := make([]bool, len(lines))
	for i, l := range lines {
		if l.Type == LineEqual {
			continue
		}
		for j := max(0, i-contextLines); j <= min(len(lines)-1, i+contextLines); j++ {
			keep[j] = true
		}
	}

	var hunks []Hunk
	var current *Hunk
	for i, l := range lines {
		if !keep[i] {
			if current != nil {
				hunks = append(hunks, *current)
				current = nil
			}
			continue
		}
		if current == nil {
			current = &Hunk{}
		}
		current.Lines = append(current.Lines, l)
	}
	if current != nil {
		hunks = append(hunks, *current)
	}
	return hunks
}

// HasChanges returns true if the catalogs differ
func (r *Result) HasChanges() bool {
	return r.Added > 0 || r.Removed > 0
}

// Summary returns a brief summary of changes
func (r *Result) Summary() string {
	if !r.HasChanges() {
		return "No changes"
	}

	var parts []string
	if r.Added > 0 {
		parts = append(parts, "+"+strconv.Itoa(r.Added))
	}
	if r.Removed > 0 {
		parts = append(parts, "-"+strconv.Itoa(r.Removed))
	}
	return strings.Join(parts, " ")
}

// Unified formats the result as a unified diff
func (r *Result) Unified() string {
	var sb strings.Builder

	sb.WriteString("--- " + r.OldName + "\n")
	sb.WriteString("+++ " + r.NewName + "\n")

	for _, hunk := range r.Hunks {
		sb.WriteString(fmt.Sprintf("@@ %d lines @@\n", len(hunk.Lines)))
		for _, line := range hunk.Lines {
			switch line.Type {
			case LineEqual:
				sb.WriteString(" " + line.Content + "\n")
			case LineInsert:
				sb.WriteString("+" + line.Content + "\n")
			case LineDelete:
				sb.WriteString("-" + line.Content + "\n")
			}
		}
	}

	return sb.String()
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
