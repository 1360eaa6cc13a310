package catdiff

import (
	"strings"
	"testing"

	"democat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(label, id string) models.Entry {
	return models.Entry{Label: label, Target: models.Target{ID: id, Command: []string{id}}}
}

func TestRender(t *testing.T) {
	lines := Render([]models.Entry{
		entry("App/Graphics", "g"),
		{Label: "App/Alarm", Target: models.Target{ID: "a", Command: []string{"alarm", "-v"}, Transition: "fade"}},
	})

	assert.Equal(t, []string{
		"App/Alarm -> a (alarm -v) [fade]",
		"App/Graphics -> g (g)",
	}, lines)
}

func TestCompare_Identical(t *testing.T) {
	entries := []models.Entry{entry("App/Alarm", "a"), entry("App/Graphics", "g")}

	r := Compare("HEAD", entries, "working", entries)

	assert.False(t, r.HasChanges())
	assert.Empty(t, r.Hunks)
	assert.Equal(t, "No changes", r.Summary())
}

func TestCompare_AddRemove(t *testing.T) {
	old := []models.Entry{entry("App/Alarm", "a"), entry("App/Graphics", "g")}
	cur := []models.Entry{entry("App/Alarm", "a"), entry("App/Search", "s"), entry("Views/Lists", "l")}

	r := Compare("HEAD", old, "working", cur)

	assert.True(t, r.HasChanges())
	assert.Equal(t, 2, r.Added)
	assert.Equal(t, 1, r.Removed)
	assert.Equal(t, "+2 -1", r.Summary())
	require.Len(t, r.Hunks, 1)

	out := r.Unified()
	assert.True(t, strings.HasPrefix(out, "--- HEAD\n+++ working\n"))
	assert.Contains(t, out, "-App/Graphics -> g (g)\n")
	assert.Contains(t, out, "+App/Search -> s (s)\n")
	assert.Contains(t, out, "+Views/Lists -> l (l)\n")
	assert.Contains(t, out, " App/Alarm -> a (a)\n")
}

func TestCompare_FromEmpty(t *testing.T) {
	r := Compare("HEAD", nil, "working", []models.Entry{entry("A", "a")})

	assert.Equal(t, 1, r.Added)
	assert.Equal(t, 0, r.Removed)
	assert.Equal(t, "+1", r.Summary())
}

func TestGroupHunks_SplitsDistantChanges(t *testing.T) {
	var lines []Line
	lines = append(lines, Line{Type: LineDelete, Content: "first"})
	for i := 0; i < 10; i++ {
		lines = append(lines, Line{Type: LineEqual, Content: "same"})
	}
	lines = append(lines, Line{Type: LineInsert, Content: "last"})

	hunks := groupHunks(lines)

	require.Len(t, hunks, 2)
	assert.Len(t, hunks[0].Lines, 1+contextLines)
	assert.Len(t, hunks[1].Lines, contextLines+1)
}
