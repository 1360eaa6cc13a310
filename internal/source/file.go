package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"democat/internal/models"

	"gopkg.in/yaml.v3"
)

// FileSource reads entries from a single YAML manifest
type FileSource struct {
	path string
}

// NewFile creates a manifest-backed source. An empty path uses DefaultPath.
func NewFile(path string) *FileSource {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	return &FileSource{path: path}
}

// DefaultPath returns the default manifest path
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "democat", "catalog.yaml")
}

// Path returns the manifest path
func (s *FileSource) Path() string {
	return s.path
}

// Entries returns all manifest entries. A missing manifest is an empty catalog.
func (s *FileSource) Entries(ctx context.Context) ([]models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Entry{}, nil
		}
		return nil, err
	}

	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return entries, nil
}

// Add validates def and appends it to the manifest
func (s *FileSource) Add(def models.EntryDefinition) error {
	def, err := sanitizeDefinition(def)
	if err != nil {
		return err
	}

	existing, err := s.load()
	if err != nil {
		return err
	}

	for _, d := range existing {
		if strings.EqualFold(d.ID, def.ID) {
			return fmt.Errorf("%w: %q", ErrDuplicateID, def.ID)
		}
	}

	existing = append(existing, def)
	return s.save(existing)
}

// Remove deletes the entry with the given id. It reports whether one was found.
func (s *FileSource) Remove(id string) (bool, error) {
	existing, err := s.load()
	if err != nil {
		return false, err
	}

	kept := existing[:0]
	found := false
	for _, d := range existing {
		if strings.EqualFold(d.ID, id) {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		return false, nil
	}
	return true, s.save(kept)
}

func (s *FileSource) load() ([]models.EntryDefinition, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.EntryDefinition{}, nil
		}
		return nil, err
	}

	var cfg models.CatalogConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: parse manifest: %w", s.path, err)
	}
	if cfg.Entries == nil {
		return []models.EntryDefinition{}, nil
	}
	return cfg.Entries, nil
}

func (s *FileSource) save(defs []models.EntryDefinition) error {
	cfg := models.CatalogConfig{Entries: defs}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

func sanitizeDefinition(def models.EntryDefinition) (models.EntryDefinition, error) {
	def.ID = strings.TrimSpace(def.ID)
	def.Dir = strings.TrimSpace(def.Dir)
	def.Transition = strings.TrimSpace(def.Transition)

	if def.ID == "" {
		return def, fmt.Errorf("id is required")
	}

	if def.Label != nil {
		label := strings.Trim(strings.TrimSpace(*def.Label), "/")
		if label == "" {
			return def, fmt.Errorf("label must not be empty")
		}
		def.Label = &label
	}

	cleaned := make([]string, 0, len(def.Command))
	for _, arg := range def.Command {
		if len(cleaned) == 0 && strings.TrimSpace(arg) == "" {
			continue
		}
		cleaned = append(cleaned, arg)
	}
	if len(cleaned) == 0 {
		return def, fmt.Errorf("command is required")
	}
	def.Command = cleaned

	return def, nil
}
