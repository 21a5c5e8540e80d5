// Package session holds the state of one working session: the category
// store, the loaded statement and the edits applied to it.
package session

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simplefinance/simplefinance/internal/analysis"
	"github.com/simplefinance/simplefinance/internal/categories"
	"github.com/simplefinance/simplefinance/internal/history"
	"github.com/simplefinance/simplefinance/internal/id"
	"github.com/simplefinance/simplefinance/internal/importer"
	"github.com/simplefinance/simplefinance/internal/model"
)

// Session owns the loaded transactions. Transactions live only in memory;
// the category store is the only state written to disk.
type Session struct {
	id      string
	store   *categories.Store
	history *history.Recorder
	logger  *log.Logger

	source string
	txns   []model.Transaction
	index  map[string]int
}

// New starts a session over store. Category mutations are appended to the
// history file at historyPath; an empty path disables the log. A nil logger
// uses log.Default().
func New(store *categories.Store, logger *log.Logger, historyPath string) *Session {
	if logger == nil {
		logger = log.Default()
	}
	sid := uuid.NewString()
	return &Session{
		id:      sid,
		store:   store,
		history: history.NewRecorder(historyPath, sid),
		logger:  logger.With("session", sid[:8]),
	}
}

// ID returns the session identifier recorded in the history log.
func (s *Session) ID() string { return s.id }

// Source returns the path of the loaded file, if any.
func (s *Session) Source() string { return s.source }

// LoadFile reads and classifies the statement at path. On failure the
// previously loaded transactions are kept and the error is a
// *importer.LoadError for anything wrong with the file contents.
func (s *Session) LoadFile(path string, p importer.Parser) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	txns, err := importer.Load(f, p, s.store.Categories())
	if err != nil {
		return err
	}
	s.set(path, txns)
	s.logger.Debug("loaded statement", "path", path, "format", p.Format(), "rows", len(txns))
	return nil
}

func (s *Session) set(source string, txns []model.Transaction) {
	s.source = source
	s.txns = txns
	s.index = make(map[string]int, len(txns))
	for i, txn := range txns {
		s.index[txn.ID] = i
	}
}

// Transactions returns a copy of every loaded transaction in file order.
func (s *Session) Transactions() []model.Transaction {
	return append([]model.Transaction(nil), s.txns...)
}

// Expenses returns the Debit transactions.
func (s *Session) Expenses() []model.Transaction {
	return analysis.ByDirection(s.txns, model.Debit)
}

// Payments returns the Credit transactions.
func (s *Session) Payments() []model.Transaction {
	return analysis.ByDirection(s.txns, model.Credit)
}

// Categories returns a copy of the current category map.
func (s *Session) Categories() *model.CategoryMap {
	return s.store.Categories()
}

// View filters the loaded transactions and adds the running balance.
func (s *Session) View(c analysis.Criteria) []model.BalanceRow {
	return analysis.AddBalanceColumns(analysis.Filter(s.txns, c))
}

// Edit is a manual change to one transaction. A nil Amount or empty
// Category leaves that field alone.
type Edit struct {
	ID       string
	Category string
	Amount   *decimal.Decimal
}

// ApplyEdits validates every edit, then applies them in order. A changed
// category teaches the store the row's details as a keyword for that
// category, except for Uncategorized. It returns how many keywords were
// learned. Nothing is applied if any edit is invalid.
func (s *Session) ApplyEdits(edits []Edit) (int, error) {
	cats := s.store.Categories()
	for _, e := range edits {
		if _, ok := s.index[e.ID]; !ok {
			if _, _, _, err := id.Parse(e.ID); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("unknown transaction %q", e.ID)
		}
		if e.Category != "" && !cats.Has(e.Category) {
			return 0, &categories.UnknownCategoryError{Category: e.Category}
		}
		if e.Amount != nil && e.Amount.IsNegative() {
			return 0, fmt.Errorf("transaction %s: amount must not be negative", e.ID)
		}
	}

	learned := 0
	for _, e := range edits {
		txn := &s.txns[s.index[e.ID]]

		if e.Amount != nil && !e.Amount.Equal(txn.Amount) {
			s.logger.Debug("amount changed", "id", txn.ID, "from", txn.Amount, "to", *e.Amount)
			txn.Amount = *e.Amount
		}

		if e.Category == "" || e.Category == txn.Category {
			continue
		}
		s.logger.Debug("category changed", "id", txn.ID, "from", txn.Category, "to", e.Category)
		txn.Category = e.Category
		if e.Category == model.Uncategorized {
			continue
		}

		keyword := strings.TrimSpace(txn.Details)
		added, err := s.store.AddKeyword(e.Category, keyword)
		if err != nil {
			return learned, fmt.Errorf("learning keyword for %s: %w", txn.ID, err)
		}
		if !added {
			continue
		}
		learned++
		s.logger.Info("learned keyword", "category", e.Category, "keyword", keyword)
		if err := s.history.Record(history.ActionAddKeyword, e.Category, keyword); err != nil {
			s.logger.Warn("recording history", "err", err)
		}
	}
	return learned, nil
}

// AddCategory creates an empty category. It reports false when the name is
// empty or already present.
func (s *Session) AddCategory(name string) (bool, error) {
	name = strings.TrimSpace(name)
	added, err := s.store.AddCategory(name)
	if err != nil {
		return added, fmt.Errorf("adding category: %w", err)
	}
	if !added {
		return false, nil
	}
	s.logger.Info("added category", "category", name)
	if err := s.history.Record(history.ActionAddCategory, name, ""); err != nil {
		s.logger.Warn("recording history", "err", err)
	}
	return true, nil
}

// AddKeyword files keyword under category directly, without an edit. It
// reports false for empty or duplicate keywords.
func (s *Session) AddKeyword(category, keyword string) (bool, error) {
	keyword = strings.TrimSpace(keyword)
	added, err := s.store.AddKeyword(category, keyword)
	if err != nil || !added {
		return added, err
	}
	s.logger.Info("added keyword", "category", category, "keyword", keyword)
	if err := s.history.Record(history.ActionAddKeyword, category, keyword); err != nil {
		s.logger.Warn("recording history", "err", err)
	}
	return true, nil
}

// Reclassify runs the current category map over every loaded transaction,
// the same pass a fresh load would make. Manual edits to rows that no
// keyword matches are reset to Uncategorized.
func (s *Session) Reclassify() {
	s.txns = categories.Classify(s.txns, s.store.Categories())
}
