package categories

import (
	"strings"

	"github.com/simplefinance/simplefinance/internal/model"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Classifier matches transaction details against keywords by exact,
// case-insensitive equality.
type Classifier struct {
	// lookup maps a normalized keyword to the first category holding it.
	lookup map[string]string
}

// NewClassifier indexes m. Uncategorized is skipped, and when a keyword is
// listed under several categories the earliest in stored order wins.
func NewClassifier(m *model.CategoryMap) *Classifier {
	lookup := make(map[string]string)
	for _, c := range m.All() {
		if c.Name == model.Uncategorized {
			continue
		}
		for _, kw := range c.Keywords {
			key := normalize(kw)
			if key == "" {
				continue
			}
			if _, taken := lookup[key]; !taken {
				lookup[key] = c.Name
			}
		}
	}
	return &Classifier{lookup: lookup}
}

// Category returns the category for details, or Uncategorized.
func (c *Classifier) Category(details string) string {
	if name, ok := c.lookup[normalize(details)]; ok {
		return name
	}
	return model.Uncategorized
}

// Classify returns a copy of txns with every category reassigned from m.
func Classify(txns []model.Transaction, m *model.CategoryMap) []model.Transaction {
	c := NewClassifier(m)
	out := make([]model.Transaction, len(txns))
	for i, txn := range txns {
		txn.Category = c.Category(txn.Details)
		out[i] = txn
	}
	return out
}
