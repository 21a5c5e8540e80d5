package importer

import (
	"encoding/csv"
	"errors"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simplefinance/simplefinance/internal/model"
)

// ChaseParser parses Chase bank checking CSV exports. Chase signs amounts,
// so a negative amount becomes a Debit of its magnitude.
type ChaseParser struct{}

const (
	chaseDateFormat = "01/02/2006"
	chaseNumFields  = 7
	chaseColDate    = 1
	chaseColDesc    = 2
	chaseColAmount  = 3
)

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV and returns transactions.
func (p *ChaseParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = chaseNumFields

	records, err := cr.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &LoadError{Row: pe.Line, Msg: "malformed chase CSV", Err: pe.Err}
		}
		return nil, &LoadError{Msg: "reading chase CSV", Err: err}
	}

	if len(records) <= 1 {
		return []model.Transaction{}, nil
	}

	txns := make([]model.Transaction, 0, len(records)-1)
	for i, rec := range records[1:] {
		txn, err := parseChaseRow(rec)
		if err != nil {
			err.Row = i + 2
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseChaseRow(rec []string) (model.Transaction, *LoadError) {
	date, err := time.Parse(chaseDateFormat, rec[chaseColDate])
	if err != nil {
		return model.Transaction{}, &LoadError{Column: "Posting Date", Msg: "parsing date " + quote(rec[chaseColDate]), Err: err}
	}

	amount, err := decimal.NewFromString(rec[chaseColAmount])
	if err != nil {
		return model.Transaction{}, &LoadError{Column: "Amount", Msg: "parsing amount " + quote(rec[chaseColAmount]), Err: err}
	}

	dir := model.Credit
	if amount.IsNegative() {
		dir = model.Debit
	}

	return model.Transaction{
		Date:      date,
		Details:   rec[chaseColDesc],
		Amount:    amount.Abs(),
		Direction: dir,
	}, nil
}
