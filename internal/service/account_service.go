package service

import (
	"strings"

	apperrors "bankist/internal/errors"
)

type AccountHandle struct {
	Owner    string `json:"owner"`
	Username string `json:"username"`
}

// Accounts lists the login handles of every open account.
func (c *Controller) Accounts() []AccountHandle {
	accounts := c.store.Account().ListAccounts()
	out := make([]AccountHandle, len(accounts))
	for i, acc := range accounts {
		out[i] = AccountHandle{Owner: acc.Owner, Username: acc.Username}
	}
	return out
}

// CloseAccount permanently removes the logged-in account when username and
// pin both match it, then ends the session.
func (c *Controller) CloseAccount(username, pin string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, account, err := c.currentLocked()
	if err != nil {
		return observe("close", err)
	}

	c.logger.Info("Processing account closure", "session_id", sess.ID, "username", account.Username)

	p, ok := parsePIN(pin)
	if strings.TrimSpace(username) != account.Username || !ok || p != account.PIN {
		c.logger.Warn("Account closure rejected", "username", account.Username)
		return observe("close", apperrors.ErrCloseRejected)
	}

	if err := c.store.Account().DeleteAccount(account.Username); err != nil {
		return observe("close", err)
	}

	c.endSessionLocked(endClosed)
	c.logger.Info("Account closed", "username", account.Username)
	return observe("close", nil)
}
