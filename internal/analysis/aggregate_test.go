package analysis

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplefinance/simplefinance/internal/model"
)

func TestCategoryTotals(t *testing.T) {
	in := []model.Transaction{
		txn(day(2024, 1, 1), "a", "10", model.Debit, "Food"),
		txn(day(2024, 1, 2), "b", "300", model.Debit, "Travel"),
		txn(day(2024, 1, 3), "c", "15.5", model.Debit, "Food"),
		txn(day(2024, 1, 4), "d", "25.5", model.Debit, "Health"),
	}
	got := CategoryTotals(in)
	require.Len(t, got, 3)

	assert.Equal(t, "Travel", got[0].Category)
	assert.Equal(t, "300.00", got[0].Amount.StringFixed(2))

	// Food and Health tie on 25.50; name breaks the tie.
	assert.Equal(t, "Food", got[1].Category)
	assert.Equal(t, 2, got[1].Count)
	assert.Equal(t, "Health", got[2].Category)
	assert.True(t, got[1].Amount.Equal(got[2].Amount))
}

func TestCategoryTotals_Empty(t *testing.T) {
	assert.Empty(t, CategoryTotals(nil))
}

func TestRecurring(t *testing.T) {
	in := []model.Transaction{
		txn(day(2024, 1, 1), "Netflix", "56", model.Debit, "Entertainment"),
		txn(day(2024, 1, 2), "Uber", "12", model.Debit, "Transport"),
		txn(day(2024, 2, 1), "Netflix", "56", model.Debit, "Entertainment"),
		txn(day(2024, 2, 3), "netflix", "56", model.Debit, "Entertainment"),
		txn(day(2024, 3, 1), "Netflix", "60", model.Debit, "Entertainment"),
	}
	got := Recurring(in)
	require.Len(t, got, 3, "exact details match only, rows not deduplicated")
	for _, g := range got {
		assert.Equal(t, "Netflix", g.Details)
	}
	assert.Equal(t, day(2024, 1, 1), got[0].Date)
	assert.Equal(t, day(2024, 3, 1), got[2].Date)
}

func TestRecurring_None(t *testing.T) {
	got := Recurring(sampleStatement())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAnomalyThreshold_ZeroSpread(t *testing.T) {
	got := AnomalyThreshold(amounts("10", "10", "10"), StdDevSample)
	assert.True(t, got.Equal(decimal.NewFromInt(10)), "got %s", got)
}

func TestAnomalyThreshold_Spread(t *testing.T) {
	in := amounts("10", "10", "100")

	// mean 40, sample sigma sqrt(2700)
	assert.Equal(t, "143.92", AnomalyThreshold(in, StdDevSample).StringFixed(2))
	// mean 40, population sigma sqrt(1800)
	assert.Equal(t, "124.85", AnomalyThreshold(in, StdDevPopulation).StringFixed(2))
}

func TestAnomalyThreshold_Degenerate(t *testing.T) {
	assert.True(t, AnomalyThreshold(nil, StdDevSample).IsZero())

	single := AnomalyThreshold(amounts("42.10"), StdDevSample)
	assert.Equal(t, "42.10", single.StringFixed(2), "one row: threshold is the mean")
}

func TestAnomalyThresholdSigma(t *testing.T) {
	in := amounts("10", "10", "100")
	assert.Equal(t, "40.00", AnomalyThresholdSigma(in, StdDevSample, 0).StringFixed(2))
	assert.Equal(t, "92.00", AnomalyThresholdSigma(in, StdDevPopulation, 1.2256).StringFixed(2))
}

func TestAnomalies_ThresholdNotRounded(t *testing.T) {
	in := amounts("10", "10", "10", "10", "10", "10.01")

	thr := AnomalyThreshold(in, StdDevSample)
	assert.True(t, thr.LessThan(decimal.RequireFromString("10.01")), "got %s", thr)
	assert.True(t, thr.GreaterThan(decimal.RequireFromString("10.0098")), "got %s", thr)

	got := Anomalies(in, thr)
	require.Len(t, got, 1)
	assert.Equal(t, "10.01", got[0].Amount.String())
}

func TestAnomalies(t *testing.T) {
	in := amounts("10", "10", "100", "143.92", "143.93")
	got := Anomalies(in, decimal.RequireFromString("143.92"))
	require.Len(t, got, 1, "strictly greater")
	assert.Equal(t, "143.93", got[0].Amount.String())
}

func TestTopN(t *testing.T) {
	in := []model.Transaction{
		txn(day(2024, 1, 1), "small", "5", model.Debit, "Food"),
		txn(day(2024, 1, 2), "big", "500", model.Debit, "Travel"),
		txn(day(2024, 1, 3), "salary", "9000", model.Credit, model.Uncategorized),
		txn(day(2024, 1, 4), "mid-a", "50", model.Debit, "Food"),
		txn(day(2024, 1, 5), "mid-b", "50", model.Debit, "Food"),
	}

	got := TopN(in, model.Debit, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "big", got[0].Details)
	assert.Equal(t, "mid-a", got[1].Details, "ties keep input order")
	assert.Equal(t, "mid-b", got[2].Details)

	payments := TopN(in, model.Credit, 5)
	require.Len(t, payments, 1)
	assert.Equal(t, "salary", payments[0].Details)
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleStatement())
	assert.Equal(t, "138.50", s.TotalExpenses.StringFixed(2))
	assert.Equal(t, "12000.00", s.TotalIncome.StringFixed(2))
	assert.Equal(t, "11861.50", s.NetSavings.StringFixed(2))
	assert.Equal(t, 5, s.Count)
}

func TestParseStdDev(t *testing.T) {
	est, err := ParseStdDev("Population")
	require.NoError(t, err)
	assert.Equal(t, StdDevPopulation, est)

	est, err = ParseStdDev("sample")
	require.NoError(t, err)
	assert.Equal(t, StdDevSample, est)

	_, err = ParseStdDev("robust")
	assert.Error(t, err)
}
