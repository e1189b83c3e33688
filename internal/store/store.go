// Package store persists the full property catalog as a single JSON file.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"immolist/internal/domain"
)

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the full catalog in storage order. A missing, unreadable or
// malformed file yields an empty catalog; read problems never reach the
// caller.
func (s *Store) Load() []domain.Property {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[store] read %s: %v (starting empty)", s.path, err)
		}
		return []domain.Property{}
	}
	var props []domain.Property
	if err := json.Unmarshal(b, &props); err != nil {
		log.Printf("[store] parse %s: %v (starting empty)", s.path, err)
		return []domain.Property{}
	}
	// Older files predate the gallery; surface those records with an
	// empty image list instead of nil.
	for i := range props {
		if props[i].Images == nil {
			props[i].Images = []string{}
		}
	}
	return props
}

// Save replaces the persisted catalog with props. The file is written to a
// temp sibling and renamed over the old one so readers never see a half
// write.
func (s *Store) Save(props []domain.Property) error {
	if props == nil {
		props = []domain.Property{}
	}
	b, err := json.MarshalIndent(props, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}
