package service

import (
	"github.com/shopspring/decimal"

	"bankist/internal/domain"
	"bankist/internal/format"
)

const loggedOutWelcome = "Log in to get started"

// Row is one rendered movement.
type Row struct {
	Position int             `json:"position"`
	Type     string          `json:"type"`
	Date     string          `json:"date"`
	Amount   string          `json:"amount"`
	Value    decimal.Decimal `json:"value"`
}

// Dashboard is everything the display surface shows for the session.
type Dashboard struct {
	LoggedIn         bool            `json:"logged_in"`
	Welcome          string          `json:"welcome"`
	Owner            string          `json:"owner,omitempty"`
	Username         string          `json:"username,omitempty"`
	AsOf             string          `json:"as_of,omitempty"`
	Currency         string          `json:"currency,omitempty"`
	Locale           string          `json:"locale,omitempty"`
	Balance          string          `json:"balance,omitempty"`
	Income           string          `json:"income,omitempty"`
	Expense          string          `json:"expense,omitempty"`
	Interest         string          `json:"interest,omitempty"`
	Summary          *domain.Summary `json:"summary,omitempty"`
	Timer            string          `json:"timer,omitempty"`
	RemainingSeconds int             `json:"remaining_seconds"`
	Sorted           bool            `json:"sorted"`
	Rows             []Row           `json:"rows,omitempty"`
}

// Dashboard renders the current session. sorted overrides the session's
// sort toggle for this render only; nil keeps the toggle.
func (c *Controller) Dashboard(sorted *bool) (*Dashboard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, account, err := c.currentLocked()
	if err != nil {
		return &Dashboard{Welcome: loggedOutWelcome}, nil
	}

	ascending := sess.Sorted
	if sorted != nil {
		ascending = *sorted
	}
	return c.dashboardLocked(account, ascending), nil
}

// ToggleSort flips between stored and ascending order. Stored data is not
// touched.
func (c *Controller) ToggleSort() (*Dashboard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, account, err := c.currentLocked()
	if err != nil {
		return nil, err
	}

	sess.Sorted = !sess.Sorted
	return c.dashboardLocked(account, sess.Sorted), nil
}

func (c *Controller) dashboardLocked(account *domain.Account, ascending bool) *Dashboard {
	now := c.clock.Now()
	summary := account.Summary()
	money := func(v decimal.Decimal) string {
		return format.Currency(account.Locale, account.Currency, v)
	}

	movements := domain.SortMovements(account.Movements, ascending)
	rows := make([]Row, len(movements))
	// newest first: the last movement in the sequence is rendered on top
	for i, m := range movements {
		rows[len(movements)-1-i] = Row{
			Position: i + 1,
			Type:     m.Type(),
			Date:     format.DateLabel(m.Date, now, account.Locale),
			Amount:   money(m.Amount),
			Value:    m.Amount,
		}
	}

	remaining := c.timer.Remaining()
	d := &Dashboard{
		LoggedIn:         true,
		Welcome:          "Welcome back, " + account.FirstName(),
		Owner:            account.Owner,
		Username:         account.Username,
		Currency:         account.Currency,
		Locale:           account.Locale,
		Balance:          money(summary.Balance),
		Income:           money(summary.Income),
		Expense:          money(summary.Expense),
		Interest:         money(summary.Interest),
		Summary:          &summary,
		Timer:            format.Timer(remaining),
		RemainingSeconds: remaining,
		Sorted:           ascending,
		Rows:             rows,
	}
	if c.current != nil {
		d.AsOf = c.current.AsOf
	}
	return d
}
