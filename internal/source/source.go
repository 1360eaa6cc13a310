// Package source provides the catalog sources that enumerate registered demos.
package source

import (
	"context"
	"errors"
	"fmt"

	"democat/internal/models"

	"gopkg.in/yaml.v3"
)

// ErrDuplicateID is returned when adding an entry whose id is already registered
var ErrDuplicateID = errors.New("duplicate entry id")

// Source enumerates all registered demo entries as flat (label, target) pairs
type Source interface {
	Entries(ctx context.Context) ([]models.Entry, error)
}

// Func adapts a plain function to a Source
type Func func(ctx context.Context) ([]models.Entry, error)

// Entries calls f
func (f Func) Entries(ctx context.Context) ([]models.Entry, error) {
	return f(ctx)
}

// Static is a fixed list of entries
type Static []models.Entry

// Entries returns a copy of the list
func (s Static) Entries(context.Context) ([]models.Entry, error) {
	return append([]models.Entry(nil), s...), nil
}

// multi concatenates several sources in order
type multi []Source

// Multi returns a source that concatenates the entries of sources in order
func Multi(sources ...Source) Source {
	return multi(sources)
}

func (m multi) Entries(ctx context.Context) ([]models.Entry, error) {
	var all []models.Entry
	for _, s := range m {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := s.Entries(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

// Parse decodes a YAML manifest into entries
func Parse(data []byte) ([]models.Entry, error) {
	var cfg models.CatalogConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	entries := make([]models.Entry, 0, len(cfg.Entries))
	for _, def := range cfg.Entries {
		entries = append(entries, models.NewEntry(def))
	}
	return entries, nil
}
