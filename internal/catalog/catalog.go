// Package catalog builds the browsable hierarchy of demo entries.
//
// Entries carry slash-delimited labels. For a given prefix, BuildChildren
// returns the immediate children: leaf rows for entries that end one level
// below the prefix, and one folder row per distinct deeper segment.
package catalog

import (
	"sort"
	"strings"

	"democat/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Separator delimits label and prefix segments
const Separator = "/"

// Builder computes catalog levels. Its zero value collates with the root
// locale.
type Builder struct {
	Locale language.Tag
}

// NewBuilder creates a builder that sorts titles for the given locale
func NewBuilder(locale language.Tag) *Builder {
	return &Builder{Locale: locale}
}

// ParseLocale parses a BCP 47 tag such as "en-US" or a POSIX locale such as
// "de_DE.UTF-8". Unparseable or empty input yields the root locale.
func ParseLocale(s string) language.Tag {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" || s == "C" || s == "POSIX" {
		return language.Und
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und
	}
	return tag
}

var defaultBuilder = &Builder{Locale: language.Und}

// BuildChildren returns the children of prefix using the root locale
func BuildChildren(entries []models.Entry, prefix string) []models.ListItem {
	return defaultBuilder.Children(entries, prefix)
}

// Children returns the one-level listing of prefix: folders deduplicated by
// name (first occurrence wins), leaves kept as-is, sorted by collated title.
func (b *Builder) Children(entries []models.Entry, prefix string) []models.ListItem {
	prefixPath := SplitPath(prefix)
	depth := len(prefixPath)

	items := make([]models.ListItem, 0)
	seen := make(map[string]struct{})

	for _, entry := range entries {
		labelPath := SplitPath(entry.Label)
		if len(labelPath) <= depth || !hasPrefix(labelPath, prefixPath) {
			continue
		}

		name := labelPath[depth]
		if name == "" {
			continue
		}

		if len(labelPath) == depth+1 {
			items = append(items, models.ListItem{
				Title:  name,
				Action: models.Leaf{Target: entry.Target},
			})
			continue
		}

		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		items = append(items, models.ListItem{
			Title:  name,
			Action: models.Descend{Prefix: JoinPath(prefix, name)},
		})
	}

	b.sort(items)
	return items
}

// sort orders rows by title. collate.Collator keeps internal buffers, so one
// is created per call.
func (b *Builder) sort(items []models.ListItem) {
	c := collate.New(b.Locale)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(items[i].Title, items[j].Title) < 0
	})
}

// SplitPath splits a label or prefix into segments. The empty string has
// no segments.
func SplitPath(p string) []string {
	if p == "" {
		return nil
	}
	return strings.Split(p, Separator)
}

// JoinPath appends name to prefix
func JoinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + Separator + name
}

// Parent returns the prefix one level up. The parent of the root is the root.
func Parent(prefix string) string {
	if i := strings.LastIndex(prefix, Separator); i >= 0 {
		return prefix[:i]
	}
	return ""
}

// Base returns the last segment of prefix
func Base(prefix string) string {
	if i := strings.LastIndex(prefix, Separator); i >= 0 {
		return prefix[i+1:]
	}
	return prefix
}

func hasPrefix(path, prefix []string) bool {
	for i, seg := range prefix {
		if path[i] != seg {
			return false
		}
	}
	return true
}
