package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// Category is a named bucket with the keywords that classify into it.
type Category struct {
	Name     string
	Keywords []string
}

// CategoryMap maps category names to keywords, keeping the stored order.
// The order decides which category wins when a details string matches
// keywords under more than one category.
type CategoryMap struct {
	entries []Category
	index   map[string]int
}

// NewCategoryMap builds a map from categories in order. Uncategorized is
// inserted first when missing; later duplicates of a name are merged.
func NewCategoryMap(cats ...Category) *CategoryMap {
	m := &CategoryMap{index: make(map[string]int)}
	if !slices.ContainsFunc(cats, func(c Category) bool { return c.Name == Uncategorized }) {
		m.add(Category{Name: Uncategorized})
	}
	for _, c := range cats {
		m.add(c)
	}
	return m
}

func (m *CategoryMap) add(c Category) {
	if i, ok := m.index[c.Name]; ok {
		for _, kw := range c.Keywords {
			if !slices.Contains(m.entries[i].Keywords, kw) {
				m.entries[i].Keywords = append(m.entries[i].Keywords, kw)
			}
		}
		return
	}
	m.index[c.Name] = len(m.entries)
	m.entries = append(m.entries, Category{Name: c.Name, Keywords: append([]string{}, c.Keywords...)})
}

// Names returns category names in stored order.
func (m *CategoryMap) Names() []string {
	names := make([]string, len(m.entries))
	for i, c := range m.entries {
		names[i] = c.Name
	}
	return names
}

// All returns a copy of the categories in stored order.
func (m *CategoryMap) All() []Category {
	out := make([]Category, len(m.entries))
	for i, c := range m.entries {
		out[i] = Category{Name: c.Name, Keywords: slices.Clone(c.Keywords)}
	}
	return out
}

// Has reports whether a category exists.
func (m *CategoryMap) Has(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Keywords returns the keywords of a category, or nil.
func (m *CategoryMap) Keywords(name string) []string {
	i, ok := m.index[name]
	if !ok {
		return nil
	}
	return slices.Clone(m.entries[i].Keywords)
}

// Len returns the number of categories.
func (m *CategoryMap) Len() int { return len(m.entries) }

// AddCategory appends an empty category. It reports false if it exists.
func (m *CategoryMap) AddCategory(name string) bool {
	if m.Has(name) {
		return false
	}
	m.add(Category{Name: name})
	return true
}

// AppendKeyword adds keyword under an existing category. It reports false
// when the category is missing or already holds the keyword.
func (m *CategoryMap) AppendKeyword(name, keyword string) bool {
	i, ok := m.index[name]
	if !ok || slices.Contains(m.entries[i].Keywords, keyword) {
		return false
	}
	m.entries[i].Keywords = append(m.entries[i].Keywords, keyword)
	return true
}

// Clone returns a deep copy.
func (m *CategoryMap) Clone() *CategoryMap {
	return NewCategoryMap(m.All()...)
}

// MarshalJSON writes a JSON object in stored order.
func (m *CategoryMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.Keywords)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of string arrays, keeping key order.
func (m *CategoryMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("category map must be a JSON object")
	}

	var cats []Category
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", tok)
		}
		var kws []string
		if err := dec.Decode(&kws); err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}
		cats = append(cats, Category{Name: name, Keywords: kws})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = *NewCategoryMap(cats...)
	return nil
}
