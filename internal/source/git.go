package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"democat/internal/models"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitSource reads a manifest as it exists at a git revision
type GitSource struct {
	path string // Manifest path on disk, inside a work tree
	rev  string
}

// NewGit creates a source for the committed manifest at rev (default HEAD)
func NewGit(manifestPath, rev string) *GitSource {
	if rev == "" {
		rev = "HEAD"
	}
	return &GitSource{path: manifestPath, rev: rev}
}

// Revision returns the revision the source reads from
func (s *GitSource) Revision() string {
	return s.rev
}

// Entries returns the manifest entries at the revision. A manifest that does
// not exist at that revision is an empty catalog.
func (s *GitSource) Entries(ctx context.Context) ([]models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.read()
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return []models.Entry{}, nil
		}
		return nil, err
	}

	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s@%s: %w", s.path, s.rev, err)
	}
	return entries, nil
}

func (s *GitSource) read() ([]byte, error) {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository for %s: %w", s.path, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, err
	}

	rel, err := relativeTo(worktree.Filesystem.Root(), abs)
	if err != nil {
		return nil, err
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(s.rev))
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", s.rev, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, err
	}

	file, err := commit.File(rel)
	if err != nil {
		return nil, err
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, err
	}
	return []byte(contents), nil
}

// relativeTo returns path relative to root in slash form, resolving symlinks
// so temp directories behind links still compare equal
func relativeTo(root, path string) (string, error) {
	if r, err := filepath.EvalSymlinks(root); err == nil {
		root = r
	}
	if p, err := filepath.EvalSymlinks(path); err == nil {
		path = p
	} else if d, err := filepath.EvalSymlinks(filepath.Dir(path)); err == nil {
		path = filepath.Join(d, filepath.Base(path))
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside the repository at %s", path, root)
	}
	return filepath.ToSlash(rel), nil
}
