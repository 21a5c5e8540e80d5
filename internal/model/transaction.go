package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells whether money left (Debit) or entered (Credit) the account.
type Direction string

const (
	Debit  Direction = "Debit"
	Credit Direction = "Credit"
)

// ParseDirection matches a statement indicator case-insensitively.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debit":
		return Debit, true
	case "credit":
		return Credit, true
	}
	return "", false
}

// Uncategorized is the default category. It is never a classification target.
const Uncategorized = "Uncategorized"

// Transaction is one statement entry.
type Transaction struct {
	ID        string          // "YYYY-MM-NNN", assigned in file order
	Date      time.Time
	Details   string
	Amount    decimal.Decimal // magnitude, never negative
	Direction Direction
	Category  string
}

// Signed returns the amount with Credit positive and Debit negative.
func (t Transaction) Signed() decimal.Decimal {
	if t.Direction == Credit {
		return t.Amount
	}
	return t.Amount.Neg()
}

// BalanceRow is a transaction in a filtered view, with its signed amount and
// the running balance up to and including it.
type BalanceRow struct {
	Transaction
	SignedAmount decimal.Decimal
	Balance      decimal.Decimal
}
