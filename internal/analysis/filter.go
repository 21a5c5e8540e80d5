// Package analysis holds the pure computations behind the dashboard:
// filtering, running balance and aggregations. None of these functions
// mutate their input.
package analysis

import (
	"strings"
	"time"

	"github.com/simplefinance/simplefinance/internal/model"
)

// AllCategories disables the category filter.
const AllCategories = "All"

// Criteria selects transactions. Zero From or To leaves that end unbounded;
// both ends are inclusive. Category "All" (or empty) matches every category.
// Search matches details case-insensitively as a substring.
type Criteria struct {
	From     time.Time
	To       time.Time
	Category string
	Search   string
}

// Filter returns the transactions matching c, in input order.
func Filter(txns []model.Transaction, c Criteria) []model.Transaction {
	search := strings.ToLower(c.Search)
	out := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if !c.From.IsZero() && txn.Date.Before(c.From) {
			continue
		}
		if !c.To.IsZero() && txn.Date.After(c.To) {
			continue
		}
		if c.Category != "" && c.Category != AllCategories && txn.Category != c.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(txn.Details), search) {
			continue
		}
		out = append(out, txn)
	}
	return out
}

// DateSpan returns the earliest and latest dates. ok is false for no input.
func DateSpan(txns []model.Transaction) (from, to time.Time, ok bool) {
	for i, txn := range txns {
		if i == 0 || txn.Date.Before(from) {
			from = txn.Date
		}
		if i == 0 || txn.Date.After(to) {
			to = txn.Date
		}
	}
	return from, to, len(txns) > 0
}

// ByDirection returns the Debit (expenses) or Credit (payments) rows.
func ByDirection(txns []model.Transaction, dir model.Direction) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if txn.Direction == dir {
			out = append(out, txn)
		}
	}
	return out
}
