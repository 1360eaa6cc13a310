package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"democat/internal/models"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// DefaultPattern matches every YAML manifest below the catalog directory
const DefaultPattern = "**/*.{yaml,yml}"

// maxParallelLoads bounds how many manifests are parsed at once
const maxParallelLoads = 8

// DirSource reads every manifest below a directory that matches a glob pattern
type DirSource struct {
	root    string
	pattern string
}

// NewDir creates a directory-backed source. An empty pattern uses DefaultPattern.
func NewDir(root, pattern string) *DirSource {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &DirSource{root: root, pattern: pattern}
}

// Root returns the catalog directory
func (s *DirSource) Root() string {
	return s.root
}

// Pattern returns the manifest glob pattern
func (s *DirSource) Pattern() string {
	return s.pattern
}

// Files returns the matching manifest paths in sorted order
func (s *DirSource) Files() ([]string, error) {
	if !doublestar.ValidatePattern(s.pattern) {
		return nil, fmt.Errorf("invalid manifest pattern %q", s.pattern)
	}

	info, err := os.Stat(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", s.root)
	}

	matches, err := doublestar.Glob(os.DirFS(s.root), s.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(s.root, filepath.FromSlash(m))
	}
	return paths, nil
}

// Entries parses all matching manifests concurrently and concatenates them
// in path order. A missing directory is an empty catalog.
func (s *DirSource) Entries(ctx context.Context) ([]models.Entry, error) {
	paths, err := s.Files()
	if err != nil {
		return nil, err
	}

	results := make([][]models.Entry, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)

	for i, path := range paths {
		g.Go(func() error {
			entries, err := NewFile(path).Entries(ctx)
			if err != nil {
				return err
			}
			results[i] = entries
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]models.Entry, 0)
	for _, entries := range results {
		all = append(all, entries...)
	}
	return all, nil
}
