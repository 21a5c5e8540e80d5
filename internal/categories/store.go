package categories

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/simplefinance/simplefinance/internal/model"
)

// Load reads the category map at path. A missing file yields Default().
func Load(path string) (*model.CategoryMap, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, &StorageReadError{Path: path, Err: err}
	}

	var m model.CategoryMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &StorageReadError{Path: path, Err: err}
	}
	return &m, nil
}

// Save replaces the file at path with the full map. The write goes through a
// temp file and rename, so readers never see a partial file.
func Save(path string, m *model.CategoryMap) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling categories: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating categories dir: %w", err)
		}
	}
	if err := renameio.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}
	return nil
}

// Store binds a category map to the file it persists to. Every mutation is
// written back before the call returns.
type Store struct {
	path       string
	categories *model.CategoryMap
}

// NewStore wraps an already loaded map.
func NewStore(path string, m *model.CategoryMap) *Store {
	return &Store{path: path, categories: m}
}

// Open loads the map at path and returns a Store for it.
func Open(path string) (*Store, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewStore(path, m), nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Categories returns a copy of the current map.
func (s *Store) Categories() *model.CategoryMap {
	return s.categories.Clone()
}

// Save writes the current map to disk.
func (s *Store) Save() error {
	return Save(s.path, s.categories)
}

// AddKeyword trims keyword and files it under category. It reports whether a
// keyword was inserted; empty and duplicate keywords are no-ops. If the file
// cannot be written the map is left unchanged.
func (s *Store) AddKeyword(category, keyword string) (bool, error) {
	if !s.categories.Has(category) {
		return false, &UnknownCategoryError{Category: category}
	}
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return false, nil
	}
	next := s.categories.Clone()
	if !next.AppendKeyword(category, keyword) {
		return false, nil
	}
	if err := s.commit(next); err != nil {
		return false, err
	}
	return true, nil
}

// AddCategory creates an empty category. It reports false for an empty or
// existing name. If the file cannot be written the map is left unchanged.
func (s *Store) AddCategory(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	next := s.categories.Clone()
	if !next.AddCategory(name) {
		return false, nil
	}
	if err := s.commit(next); err != nil {
		return false, err
	}
	return true, nil
}

// commit persists next and only then makes it current.
func (s *Store) commit(next *model.CategoryMap) error {
	if err := Save(s.path, next); err != nil {
		return err
	}
	s.categories = next
	return nil
}
