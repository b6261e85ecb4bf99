package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency renders amount with the locale's separators, exactly two
// fraction digits and the currency symbol on the side the locale expects.
// A leading minus marks negative amounts. Unknown ISO codes are printed
// verbatim in place of a symbol.
func Currency(locale, code string, amount decimal.Decimal) string {
	rules, tag := rulesFor(locale)
	p := message.NewPrinter(tag)

	symbol := strings.ToUpper(code)
	if unit, err := currency.ParseISO(code); err == nil {
		symbol = p.Sprint(currency.Symbol(unit))
	}

	value, _ := amount.Abs().Round(2).Float64()
	digits := p.Sprint(number.Decimal(value, number.MinFractionDigits(2), number.MaxFractionDigits(2)))

	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
	}

	if rules.symbolAfter {
		return sign + digits + " " + symbol
	}
	return sign + symbol + digits
}
