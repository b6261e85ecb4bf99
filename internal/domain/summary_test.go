package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimals(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual),
		"Decimal values not equal: expected %s, got %s", expected, actual)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, decimal.RequireFromString("1.2"))

	assert.True(t, s.Balance.IsZero())
	assert.True(t, s.Income.IsZero())
	assert.True(t, s.Expense.IsZero())
	assert.True(t, s.Interest.IsZero())
}

func TestSummarize_SeedAccount(t *testing.T) {
	amounts := decimals("200", "455.23", "-306.5", "25000", "-642.21", "-133.9", "79.97", "1300")

	s := Summarize(amounts, decimal.RequireFromString("1.2"))

	assertDecimal(t, "25952.59", s.Balance)
	assertDecimal(t, "27035.2", s.Income)
	assertDecimal(t, "-1082.61", s.Expense)
	// 2.4 + 5.46276 + 300 + 15.6; 79.97 * 1.2% = 0.95964 is dropped
	assertDecimal(t, "323.46276", s.Interest)
}

func TestSummarize_BalanceIsIncomePlusExpense(t *testing.T) {
	cases := [][]decimal.Decimal{
		decimals("5000", "3400", "-150", "-790", "-3210", "-1000", "8500", "-30"),
		decimals("-1", "-2", "-3"),
		decimals("0.01"),
		decimals("0", "0", "10", "-10"),
	}

	for _, amounts := range cases {
		s := Summarize(amounts, decimal.NewFromInt(2))
		assert.True(t, s.Balance.Equal(s.Income.Add(s.Expense)), "amounts=%v", amounts)
		assert.False(t, s.Expense.IsPositive())
		assert.False(t, s.Income.IsNegative())
	}
}

func TestSummarize_InterestThresholdAppliedPerMovement(t *testing.T) {
	// each deposit earns 0.6, none qualifies although together they earn 1.8
	s := Summarize(decimals("50", "50", "50"), decimal.RequireFromString("1.2"))
	assert.True(t, s.Interest.IsZero())

	// exactly one unit qualifies
	s = Summarize(decimals("100", "50"), decimal.NewFromInt(1))
	assertDecimal(t, "1", s.Interest)
}

func TestSummarize_WithdrawalsEarnNoInterest(t *testing.T) {
	s := Summarize(decimals("-10000"), decimal.NewFromInt(5))

	assert.True(t, s.Interest.IsZero())
	assertDecimal(t, "-10000", s.Expense)
}
