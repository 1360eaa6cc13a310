package catalog

import (
	"errors"

	"democat/internal/models"
)

// SkipFolder can be returned by a WalkFunc to skip descending into a folder row
var SkipFolder = errors.New("skip this folder")

// WalkFunc is called for every row reached by Walk. depth is 0 for the
// children of the starting prefix.
type WalkFunc func(item models.ListItem, depth int) error

// Walk visits the hierarchy below prefix depth-first, in display order
func (b *Builder) Walk(entries []models.Entry, prefix string, fn WalkFunc) error {
	return b.walk(entries, prefix, 0, fn)
}

func (b *Builder) walk(entries []models.Entry, prefix string, depth int, fn WalkFunc) error {
	for _, item := range b.Children(entries, prefix) {
		err := fn(item, depth)
		if errors.Is(err, SkipFolder) {
			continue
		}
		if err != nil {
			return err
		}

		if next, ok := item.Prefix(); ok {
			if err := b.walk(entries, next, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// FindByLabel returns every entry whose label equals label exactly
func FindByLabel(entries []models.Entry, label string) []models.Entry {
	var found []models.Entry
	for _, e := range entries {
		if e.Label == label {
			found = append(found, e)
		}
	}
	return found
}

// FindByID returns the entry with the given target id
func FindByID(entries []models.Entry, id string) (models.Entry, bool) {
	for _, e := range entries {
		if e.Target.ID == id {
			return e, true
		}
	}
	return models.Entry{}, false
}

// Count returns how many launchable entries live anywhere below prefix
func Count(entries []models.Entry, prefix string) int {
	prefixPath := SplitPath(prefix)
	n := 0
	for _, e := range entries {
		labelPath := SplitPath(e.Label)
		if len(labelPath) > len(prefixPath) && hasPrefix(labelPath, prefixPath) && reachable(labelPath[len(prefixPath):]) {
			n++
		}
	}
	return n
}

// reachable reports whether every remaining segment is non-empty, i.e.
// whether browsing can ever get to the entry
func reachable(rest []string) bool {
	for _, seg := range rest {
		if seg == "" {
			return false
		}
	}
	return true
}
