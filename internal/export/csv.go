// Package export writes transactions and filtered views as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/simplefinance/simplefinance/internal/analysis"
	"github.com/simplefinance/simplefinance/internal/model"
)

// File names written by WriteAll.
const (
	FilteredFile = "filtered_transactions.csv"
	ExpensesFile = "expenses.csv"
	PaymentsFile = "payments.csv"
)

var (
	transactionHeader = []string{"ID", "Date", "Details", "Amount", "Debit/Credit", "Category"}
	viewHeader        = append(append([]string{}, transactionHeader...), "SignedAmount", "Balance")
)

const (
	numTxnFields  = 6
	numViewFields = 8
	colID         = 0
	colDate       = 1
	colDetails    = 2
	colAmount     = 3
	colDirection  = 4
	colCategory   = 5
	colSigned     = 6
	colBalance    = 7
)

// Writer formats dates with a fixed layout. Amounts are written exactly as
// held.
type Writer struct {
	DateLayout string
}

// MarshalTransaction converts a transaction to a CSV row.
func (w Writer) MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numTxnFields)
	w.fill(row, txn)
	return row
}

// MarshalRow converts a view row to a CSV row.
func (w Writer) MarshalRow(r model.BalanceRow) []string {
	row := make([]string, numViewFields)
	w.fill(row, r.Transaction)
	row[colSigned] = r.SignedAmount.String()
	row[colBalance] = r.Balance.String()
	return row
}

func (w Writer) fill(row []string, txn model.Transaction) {
	row[colID] = txn.ID
	row[colDate] = txn.Date.Format(w.DateLayout)
	row[colDetails] = txn.Details
	row[colAmount] = txn.Amount.String()
	row[colDirection] = string(txn.Direction)
	row[colCategory] = txn.Category
}

// WriteTransactions writes a header and one row per transaction.
func (w Writer) WriteTransactions(out io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(transactionHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, txn := range txns {
		if err := cw.Write(w.MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteView writes a filtered view including signed amount and balance.
func (w Writer) WriteView(out io.Writer, rows []model.BalanceRow) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(viewHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rows {
		if err := cw.Write(w.MarshalRow(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAll writes the filtered view plus its expenses-only and payments-only
// tables into dir and returns the paths written.
func (w Writer) WriteAll(dir string, rows []model.BalanceRow) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	txns := analysis.Transactions(rows)
	outputs := []struct {
		name  string
		write func(io.Writer) error
	}{
		{FilteredFile, func(f io.Writer) error { return w.WriteView(f, rows) }},
		{ExpensesFile, func(f io.Writer) error { return w.WriteTransactions(f, analysis.ByDirection(txns, model.Debit)) }},
		{PaymentsFile, func(f io.Writer) error { return w.WriteTransactions(f, analysis.ByDirection(txns, model.Credit)) }},
	}

	paths := make([]string, 0, len(outputs))
	for _, o := range outputs {
		path := filepath.Join(dir, o.name)
		if err := writeFile(path, o.write); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
