package analysis

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/simplefinance/simplefinance/internal/model"
)

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
	Count    int
}

// CategoryTotals sums amounts per category, largest first. Equal totals are
// ordered by name.
func CategoryTotals(txns []model.Transaction) []CategoryTotal {
	idx := make(map[string]int)
	var totals []CategoryTotal
	for _, txn := range txns {
		i, ok := idx[txn.Category]
		if !ok {
			i = len(totals)
			idx[txn.Category] = i
			totals = append(totals, CategoryTotal{Category: txn.Category})
		}
		totals[i].Amount = totals[i].Amount.Add(txn.Amount)
		totals[i].Count++
	}
	slices.SortFunc(totals, func(a, b CategoryTotal) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return totals
}

// Recurring returns every row whose details occur more than once, in input
// order. Rows are not deduplicated.
func Recurring(txns []model.Transaction) []model.Transaction {
	counts := make(map[string]int)
	for _, txn := range txns {
		counts[txn.Details]++
	}
	out := make([]model.Transaction, 0)
	for _, txn := range txns {
		if counts[txn.Details] > 1 {
			out = append(out, txn)
		}
	}
	return out
}

// StdDev selects the standard deviation estimator.
type StdDev int

const (
	// StdDevSample divides by n-1.
	StdDevSample StdDev = iota
	// StdDevPopulation divides by n.
	StdDevPopulation
)

// ParseStdDev accepts "sample" or "population" in any case.
func ParseStdDev(s string) (StdDev, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sample":
		return StdDevSample, nil
	case "population":
		return StdDevPopulation, nil
	}
	return 0, fmt.Errorf("unknown standard deviation %q (want sample or population)", s)
}

// DefaultSigma is the number of standard deviations above the mean at which
// an amount counts as unusual.
const DefaultSigma = 2.0

// AnomalyThreshold returns mean + 2·σ of the amounts.
func AnomalyThreshold(txns []model.Transaction, est StdDev) decimal.Decimal {
	return AnomalyThresholdSigma(txns, est, DefaultSigma)
}

// AnomalyThresholdSigma returns mean + sigma·σ of the amounts, unrounded.
// σ is 0 for fewer than two rows; no rows yields 0.
func AnomalyThresholdSigma(txns []model.Transaction, est StdDev, sigma float64) decimal.Decimal {
	n := len(txns)
	if n == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(txn.Amount)
	}
	mean := sum.Div(decimal.NewFromInt(int64(n)))
	if n < 2 {
		return mean
	}

	m := mean.InexactFloat64()
	var sq float64
	for _, txn := range txns {
		d := txn.Amount.InexactFloat64() - m
		sq += d * d
	}
	denom := float64(n)
	if est == StdDevSample {
		denom = float64(n - 1)
	}
	std := math.Sqrt(sq / denom)

	return mean.Add(decimal.NewFromFloat(sigma * std))
}

// Anomalies returns the rows with an amount strictly above threshold.
func Anomalies(txns []model.Transaction, threshold decimal.Decimal) []model.Transaction {
	out := make([]model.Transaction, 0)
	for _, txn := range txns {
		if txn.Amount.GreaterThan(threshold) {
			out = append(out, txn)
		}
	}
	return out
}

// TopN returns the n largest rows of one direction, largest first. Equal
// amounts keep input order.
func TopN(txns []model.Transaction, dir model.Direction, n int) []model.Transaction {
	rows := ByDirection(txns, dir)
	slices.SortStableFunc(rows, func(a, b model.Transaction) int {
		return b.Amount.Cmp(a.Amount)
	})
	if n >= 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// Summary holds the headline metrics of a transaction set.
type Summary struct {
	TotalExpenses decimal.Decimal
	TotalIncome   decimal.Decimal
	NetSavings    decimal.Decimal
	Count         int
}

// Summarize totals debits and credits.
func Summarize(txns []model.Transaction) Summary {
	s := Summary{Count: len(txns)}
	for _, txn := range txns {
		switch txn.Direction {
		case model.Debit:
			s.TotalExpenses = s.TotalExpenses.Add(txn.Amount)
		case model.Credit:
			s.TotalIncome = s.TotalIncome.Add(txn.Amount)
		}
	}
	s.NetSavings = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}
