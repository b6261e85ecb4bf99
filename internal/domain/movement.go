package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Movement is one signed transaction amount: positive is a deposit,
// negative a withdrawal. Amount and Date travel together so the two
// sequences can never drift out of alignment.
type Movement struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

const (
	MovementDeposit    = "deposit"
	MovementWithdrawal = "withdrawal"
)

// Type is "deposit" for positive amounts and "withdrawal" otherwise.
func (m Movement) Type() string {
	if m.Amount.IsPositive() {
		return MovementDeposit
	}
	return MovementWithdrawal
}

// SortMovements returns the movements in stored order, or an ascending copy
// by amount when ascending is set. The input is never modified.
func SortMovements(movements []Movement, ascending bool) []Movement {
	out := make([]Movement, len(movements))
	copy(out, movements)
	if ascending {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Amount.LessThan(out[j].Amount)
		})
	}
	return out
}
