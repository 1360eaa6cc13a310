package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"democat/internal/catalog"
	"democat/internal/models"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// listItem is the JSON form of a catalog row
type listItem struct {
	Title   string   `json:"title"`
	Label   string   `json:"label"`
	Kind    string   `json:"kind"`
	Demos   int      `json:"demos,omitempty"`
	ID      string   `json:"id,omitempty"`
	Command []string `json:"command,omitempty"`
}

func newListCmd(a *app) *cobra.Command {
	var tree, asJSON bool

	cmd := &cobra.Command{
		Use:   "list [prefix]",
		Short: "List one level of the catalog",
		Long: `List the folders and demos directly below a prefix, sorted the way the
browser shows them. Use --tree to include everything below the prefix.`,
		Example: `  # Top level
  democat list

  # Everything under App, indented
  democat list App --tree

  # Machine-readable
  democat list App/Activity --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = normalizePrefix(args[0])
			}

			entries, err := a.entries(cmd.Context())
			if err != nil {
				return err
			}

			b := a.builder()
			w := cmd.OutOrStdout()
			switch {
			case tree:
				return listTree(w, b, entries, prefix)
			case asJSON:
				return listJSON(w, b, entries, prefix)
			default:
				return listTable(w, b, entries, prefix)
			}
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "Show every level below the prefix")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	cmd.MarkFlagsMutuallyExclusive("tree", "json")

	return cmd
}

func toListItem(entries []models.Entry, prefix string, item models.ListItem) listItem {
	out := listItem{Title: item.Title, Label: catalog.JoinPath(prefix, item.Title)}
	switch action := item.Action.(type) {
	case models.Descend:
		out.Kind = "folder"
		out.Demos = catalog.Count(entries, action.Prefix)
	case models.Leaf:
		out.Kind = "demo"
		out.ID = action.Target.ID
		out.Command = action.Target.Command
	}
	return out
}

func listTable(w io.Writer, b *catalog.Builder, entries []models.Entry, prefix string) error {
	items := b.Children(entries, prefix)
	if len(items) == 0 {
		if prefix == "" {
			_, _ = fmt.Fprintln(w, "Catalog is empty")
		} else {
			_, _ = fmt.Fprintf(w, "Nothing under %s\n", prefix)
		}
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Title", "Kind", "Target", "Command"})

	for _, item := range items {
		row := toListItem(entries, prefix, item)
		if row.Kind == "folder" {
			t.AppendRow(table.Row{row.Title + "/", row.Kind, fmt.Sprintf("%d demos", row.Demos), ""})
			continue
		}
		t.AppendRow(table.Row{row.Title, row.Kind, row.ID, strings.Join(row.Command, " ")})
	}

	t.Render()
	return nil
}

func listJSON(w io.Writer, b *catalog.Builder, entries []models.Entry, prefix string) error {
	items := b.Children(entries, prefix)
	out := make([]listItem, 0, len(items))
	for _, item := range items {
		out = append(out, toListItem(entries, prefix, item))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func listTree(w io.Writer, b *catalog.Builder, entries []models.Entry, prefix string) error {
	root := prefix
	if root == "" {
		root = "."
	}
	_, _ = fmt.Fprintln(w, root)

	return b.Walk(entries, prefix, func(item models.ListItem, depth int) error {
		indent := strings.Repeat("  ", depth+1)
		if target, ok := item.Target(); ok {
			_, err := fmt.Fprintf(w, "%s%s  (%s)\n", indent, item.Title, target.ID)
			return err
		}
		_, err := fmt.Fprintf(w, "%s%s/\n", indent, item.Title)
		return err
	})
}
