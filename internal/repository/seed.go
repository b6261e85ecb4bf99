package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"bankist/internal/domain"
)

type seedAccount struct {
	owner    string
	pin      int
	rate     string
	currency string
	locale   string
	amounts  []string
	dates    []string
}

var demoAccounts = []seedAccount{
	{
		owner:    "Jonas Schmedtmann",
		pin:      1111,
		rate:     "1.2",
		currency: "EUR",
		locale:   "pt-PT",
		amounts:  []string{"200", "455.23", "-306.5", "25000", "-642.21", "-133.9", "79.97", "1300"},
		dates: []string{
			"2022-11-18T21:31:17.178Z",
			"2022-12-23T07:42:02.383Z",
			"2024-01-28T09:15:04.904Z",
			"2024-04-01T10:17:24.185Z",
			"2024-05-08T14:11:59.604Z",
			"2024-05-09T17:01:17.194Z",
			"2024-05-09T23:36:17.929Z",
			"2024-05-10T10:51:36.790Z",
		},
	},
	{
		owner:    "Jessica Davis",
		pin:      2222,
		rate:     "1.5",
		currency: "USD",
		locale:   "en-US",
		amounts:  []string{"5000", "3400", "-150", "-790", "-3210", "-1000", "8500", "-30"},
		dates: []string{
			"2022-11-01T13:15:33.035Z",
			"2022-11-30T09:48:16.867Z",
			"2022-12-25T06:04:23.907Z",
			"2024-01-25T14:18:46.235Z",
			"2024-05-07T14:43:26.374Z",
			"2024-05-08T16:33:06.386Z",
			"2024-05-10T18:49:59.371Z",
			"2024-05-09T12:01:20.894Z",
		},
	},
}

// DemoAccounts returns fresh copies of the fixed accounts the demo starts with.
func DemoAccounts() []*domain.Account {
	out := make([]*domain.Account, 0, len(demoAccounts))
	for _, s := range demoAccounts {
		movements := make([]domain.Movement, len(s.amounts))
		for i := range s.amounts {
			date, err := time.Parse(time.RFC3339Nano, s.dates[i])
			if err != nil {
				panic(err)
			}
			movements[i] = domain.Movement{
				Amount: decimal.RequireFromString(s.amounts[i]),
				Date:   date,
			}
		}
		out = append(out, domain.NewAccount(s.owner, s.pin, decimal.RequireFromString(s.rate), s.currency, s.locale, movements...))
	}
	return out
}

// Seed creates every account in one transaction; a username collision
// leaves the store empty.
func Seed(store *Store, accounts []*domain.Account) error {
	return store.WithTransaction(func(tx *Store) error {
		for _, acc := range accounts {
			if err := tx.Account().CreateAccount(acc); err != nil {
				return err
			}
		}
		return nil
	})
}
