package importer

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simplefinance/simplefinance/internal/model"
)

// Column names of the statement format.
const (
	ColDate                    = "Date"
	ColDetails                 = "Details"
	ColAmount                  = "Amount"
	DefaultDirectionColumn     = "Debit/Credit"
	DefaultStatementDateFormat = "2 Jan 2006"
)

// StatementOptions configures the statement parser. Zero values pick the
// defaults.
type StatementOptions struct {
	DateLayout      string
	DirectionColumn string
}

// StatementParser reads the generic bank statement CSV: a header row naming
// at least Date, Details, Amount and a Debit/Credit indicator column.
type StatementParser struct {
	dateLayout string
	dirColumn  string
}

// NewStatementParser returns a parser for the statement format.
func NewStatementParser(opts StatementOptions) *StatementParser {
	p := &StatementParser{dateLayout: opts.DateLayout, dirColumn: opts.DirectionColumn}
	if p.dateLayout == "" {
		p.dateLayout = DefaultStatementDateFormat
	}
	if p.dirColumn == "" {
		p.dirColumn = DefaultDirectionColumn
	}
	return p
}

// Format returns the parser name.
func (p *StatementParser) Format() string { return "statement" }

// Parse reads the whole file. It fails on the first bad row.
func (p *StatementParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &LoadError{Row: pe.Line, Msg: "malformed CSV", Err: pe.Err}
		}
		return nil, &LoadError{Msg: "reading CSV", Err: err}
	}
	if len(records) == 0 {
		return nil, &LoadError{Msg: "empty file, expected a header row"}
	}

	cols, err := p.columns(records[0])
	if err != nil {
		return nil, err
	}

	txns := make([]model.Transaction, 0, len(records)-1)
	for i, rec := range records[1:] {
		txn, err := p.parseRow(rec, cols)
		if err != nil {
			err.Row = i + 2
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

type statementColumns struct {
	date, details, amount, direction int
}

func (p *StatementParser) columns(header []string) (statementColumns, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	var cols statementColumns
	targets := []struct {
		name string
		dst  *int
	}{
		{ColDate, &cols.date},
		{ColDetails, &cols.details},
		{ColAmount, &cols.amount},
		{p.dirColumn, &cols.direction},
	}
	var missing []string
	for _, t := range targets {
		i, ok := pos[t.name]
		if !ok {
			missing = append(missing, t.name)
			continue
		}
		*t.dst = i
	}
	if len(missing) > 0 {
		return cols, &LoadError{Row: 1, Msg: "missing required column(s): " + strings.Join(missing, ", ")}
	}
	return cols, nil
}

func (p *StatementParser) parseRow(rec []string, cols statementColumns) (model.Transaction, *LoadError) {
	rawDate := strings.TrimSpace(rec[cols.date])
	date, err := time.Parse(p.dateLayout, rawDate)
	if err != nil {
		return model.Transaction{}, &LoadError{Column: ColDate, Msg: "parsing date " + quote(rawDate), Err: err}
	}

	amount, lerr := parseAmount(rec[cols.amount])
	if lerr != nil {
		return model.Transaction{}, lerr
	}

	dir, ok := model.ParseDirection(rec[cols.direction])
	if !ok {
		return model.Transaction{}, &LoadError{
			Column: p.dirColumn,
			Msg:    "expected Debit or Credit, got " + quote(rec[cols.direction]),
		}
	}

	return model.Transaction{
		Date:      date,
		Details:   rec[cols.details],
		Amount:    amount,
		Direction: dir,
	}, nil
}

// parseAmount strips thousands separators and parses a non-negative decimal.
func parseAmount(raw string) (decimal.Decimal, *LoadError) {
	clean := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	amount, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, &LoadError{Column: ColAmount, Msg: "parsing amount " + quote(raw), Err: err}
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, &LoadError{Column: ColAmount, Msg: "amount " + quote(raw) + " is negative"}
	}
	return amount, nil
}

func quote(s string) string { return `"` + s + `"` }
