package analysis

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/simplefinance/simplefinance/internal/model"
)

// AddBalanceColumns sorts txns by date (stable, so same-day rows keep their
// order) and computes each row's signed amount and running balance.
func AddBalanceColumns(txns []model.Transaction) []model.BalanceRow {
	sorted := slices.Clone(txns)
	slices.SortStableFunc(sorted, func(a, b model.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	rows := make([]model.BalanceRow, len(sorted))
	balance := decimal.Zero
	for i, txn := range sorted {
		signed := txn.Signed()
		balance = balance.Add(signed)
		rows[i] = model.BalanceRow{
			Transaction:  txn,
			SignedAmount: signed,
			Balance:      balance,
		}
	}
	return rows
}

// Transactions strips the computed columns off a view.
func Transactions(rows []model.BalanceRow) []model.Transaction {
	out := make([]model.Transaction, len(rows))
	for i, r := range rows {
		out[i] = r.Transaction
	}
	return out
}
