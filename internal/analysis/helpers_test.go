package analysis

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/simplefinance/simplefinance/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func txn(date time.Time, details, amount string, dir model.Direction, category string) model.Transaction {
	return model.Transaction{
		Date:      date,
		Details:   details,
		Amount:    decimal.RequireFromString(amount),
		Direction: dir,
		Category:  category,
	}
}

func amounts(values ...string) []model.Transaction {
	out := make([]model.Transaction, len(values))
	for i, v := range values {
		out[i] = txn(day(2024, 1, 1), "x", v, model.Debit, model.Uncategorized)
	}
	return out
}

// randomStatement builds a reproducible statement of n rows.
func randomStatement(t *testing.T, seed uint64, n int) []model.Transaction {
	t.Helper()
	f := gofakeit.New(seed)
	cats := []string{model.Uncategorized, "Food", "Transport", "Shopping"}
	merchants := []string{f.Company(), f.Company(), f.Company(), f.Company(), f.Company()}

	out := make([]model.Transaction, n)
	for i := range out {
		d := f.DateRange(day(2023, 1, 1), day(2024, 12, 31))
		dir := model.Debit
		if f.Bool() {
			dir = model.Credit
		}
		out[i] = model.Transaction{
			Date:      day(d.Year(), d.Month(), d.Day()),
			Details:   f.RandomString(merchants),
			Amount:    decimal.NewFromFloat(f.Float64Range(0, 5000)).Round(2),
			Direction: dir,
			Category:  f.RandomString(cats),
		}
	}
	return out
}
