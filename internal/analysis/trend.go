package analysis

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/simplefinance/simplefinance/internal/model"
)

// Period is the bucket size of a trend.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// ParsePeriod accepts "monthly" or "yearly" in any case.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodMonthly, PeriodYearly:
		return p, nil
	}
	return "", fmt.Errorf("unknown trend period %q (want monthly or yearly)", s)
}

// TrendPoint is the debit, credit and net total of one period.
type TrendPoint struct {
	Period string // "2024-01" or "2024"
	Debit  decimal.Decimal
	Credit decimal.Decimal
	Net    decimal.Decimal
}

// Trends buckets txns by period, oldest first.
func Trends(txns []model.Transaction, p Period) []TrendPoint {
	layout := "2006-01"
	if p == PeriodYearly {
		layout = "2006"
	}

	byKey := make(map[string]*TrendPoint)
	for _, txn := range txns {
		key := txn.Date.Format(layout)
		pt, ok := byKey[key]
		if !ok {
			pt = &TrendPoint{Period: key}
			byKey[key] = pt
		}
		switch txn.Direction {
		case model.Debit:
			pt.Debit = pt.Debit.Add(txn.Amount)
		case model.Credit:
			pt.Credit = pt.Credit.Add(txn.Amount)
		}
	}

	points := make([]TrendPoint, 0, len(byKey))
	for _, pt := range byKey {
		pt.Net = pt.Credit.Sub(pt.Debit)
		points = append(points, *pt)
	}
	slices.SortFunc(points, func(a, b TrendPoint) int {
		return strings.Compare(a.Period, b.Period)
	})
	return points
}
