package domain

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	// interest contributions below one unit are dropped, not rounded
	minInterest = decimal.NewFromInt(1)
)

type Summary struct {
	Balance  decimal.Decimal `json:"balance"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Interest decimal.Decimal `json:"interest"`
}

// Summarize aggregates signed amounts. Interest is computed per deposit as
// amount*rate/100 and each contribution is kept only when it reaches
// minInterest on its own; qualifying contributions are then summed.
func Summarize(amounts []decimal.Decimal, rate decimal.Decimal) Summary {
	s := Summary{
		Balance:  decimal.Zero,
		Income:   decimal.Zero,
		Expense:  decimal.Zero,
		Interest: decimal.Zero,
	}

	for _, a := range amounts {
		s.Balance = s.Balance.Add(a)

		switch {
		case a.IsPositive():
			s.Income = s.Income.Add(a)
			if interest := a.Mul(rate).Div(hundred); interest.GreaterThanOrEqual(minInterest) {
				s.Interest = s.Interest.Add(interest)
			}
		case a.IsNegative():
			s.Expense = s.Expense.Add(a)
		}
	}

	return s
}
