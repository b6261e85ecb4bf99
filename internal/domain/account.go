package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Account struct {
	Owner        string          `json:"owner"`
	Username     string          `json:"username"`
	Movements    []Movement      `json:"movements"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	PIN          int             `json:"-"`
	Currency     string          `json:"currency"`
	Locale       string          `json:"locale"`
}

// NewAccount builds an account and derives its username from the owner name.
func NewAccount(owner string, pin int, interestRate decimal.Decimal, currency, locale string, movements ...Movement) *Account {
	return &Account{
		Owner:        owner,
		Username:     DeriveUsername(owner),
		Movements:    movements,
		InterestRate: interestRate,
		PIN:          pin,
		Currency:     currency,
		Locale:       locale,
	}
}

// Amounts returns the signed movement amounts in insertion order.
func (a *Account) Amounts() []decimal.Decimal {
	out := make([]decimal.Decimal, len(a.Movements))
	for i, m := range a.Movements {
		out[i] = m.Amount
	}
	return out
}

// Summary recomputes balance, income, expense and interest from the movements.
func (a *Account) Summary() Summary {
	return Summarize(a.Amounts(), a.InterestRate)
}

// Balance is the current balance; it is never cached on the account.
func (a *Account) Balance() decimal.Decimal {
	return a.Summary().Balance
}

// FirstName is the first word of the owner name.
func (a *Account) FirstName() string {
	for _, w := range strings.Fields(a.Owner) {
		return w
	}
	return ""
}

// Clone returns a deep copy so callers cannot mutate stored movements.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Movements = make([]Movement, len(a.Movements))
	copy(cp.Movements, a.Movements)
	return &cp
}

type AccountRepository interface {
	CreateAccount(account *Account) error
	GetAccount(username string) (*Account, error)
	ListAccounts() []Account
	AppendMovement(username string, movement Movement) error
	DeleteAccount(username string) error
}
