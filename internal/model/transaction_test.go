package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in     string
		want   Direction
		wantOK bool
	}{
		{"Debit", Debit, true},
		{"credit", Credit, true},
		{"  CREDIT ", Credit, true},
		{"", "", false},
		{"transfer", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDirection(tt.in)
		assert.Equal(t, tt.wantOK, ok, "ParseDirection(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseDirection(%q)", tt.in)
	}
}

func TestTransactionSigned(t *testing.T) {
	amt := decimal.RequireFromString("12.50")

	debit := Transaction{Amount: amt, Direction: Debit}
	assert.Equal(t, "-12.50", debit.Signed().StringFixed(2))

	credit := Transaction{Amount: amt, Direction: Credit}
	assert.Equal(t, "12.50", credit.Signed().StringFixed(2))
}
