package service

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount reads a form amount. Blank or malformed text counts as zero so
// it fails the positive-amount rule instead of erroring separately.
func parseAmount(raw string) decimal.Decimal {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return amount
}

func parsePIN(raw string) (int, bool) {
	pin, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return pin, true
}
