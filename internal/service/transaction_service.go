package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bankist/internal/domain"
	apperrors "bankist/internal/errors"
	"bankist/internal/observability"
	"bankist/internal/repository"
)

// a loan needs one movement of at least this share of the requested amount
var loanCollateralRatio = decimal.RequireFromString("0.1")

type LoanTicket struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	RequestedAt time.Time       `json:"requested_at"`
	DueAt       time.Time       `json:"due_at"`
}

// Transfer moves amount from the logged-in account to toUsername. It
// succeeds only when the amount is positive, the receiver exists, the
// amount does not exceed the sender's current balance and the receiver is
// someone else. Both movements share one timestamp and are written
// together or not at all.
func (c *Controller) Transfer(toUsername, amount string) (*Dashboard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, sender, err := c.currentLocked()
	if err != nil {
		return nil, observe("transfer", err)
	}

	toUsername = strings.TrimSpace(toUsername)
	value := parseAmount(amount)

	c.logger.Info("Processing transfer",
		"session_id", sess.ID,
		"from", sender.Username,
		"to", toUsername,
		"amount", value)

	if err := c.validateTransfer(sender, toUsername, value); err != nil {
		c.logger.Warn("Transfer rejected", "from", sender.Username, "to", toUsername, "error", err)
		return nil, observe("transfer", err)
	}

	now := c.clock.Now()
	err = c.store.WithTransaction(func(tx *repository.Store) error {
		if err := tx.Account().AppendMovement(sender.Username, domain.Movement{Amount: value.Neg(), Date: now}); err != nil {
			return err
		}
		return tx.Account().AppendMovement(toUsername, domain.Movement{Amount: value, Date: now})
	})
	if err != nil {
		c.logger.Error("Transfer failed", "error", err)
		return nil, observe("transfer", err)
	}

	c.resetTimerLocked()
	c.logger.Info("Transfer completed successfully", "from", sender.Username, "to", toUsername, "amount", value)
	observe("transfer", nil)

	updated, err := c.store.Account().GetAccount(sender.Username)
	if err != nil {
		return nil, err
	}
	return c.dashboardLocked(updated, sess.Sorted), nil
}

func (c *Controller) validateTransfer(sender *domain.Account, toUsername string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}

	receiver, err := c.store.Account().GetAccount(toUsername)
	if err != nil {
		return apperrors.ErrReceiverNotFound
	}

	// balance is recomputed from movements, never read from a cache
	if amount.GreaterThan(sender.Balance()) {
		return apperrors.ErrInsufficientBalance
	}

	if receiver.Username == sender.Username {
		return apperrors.ErrSameAccountTransfer
	}

	return nil
}

// RequestLoan approves a loan when the floored amount is positive and some
// movement is at least 10% of it. The loan is credited after the configured
// processing delay, and only if the same session is still active then.
func (c *Controller) RequestLoan(amount string) (*LoanTicket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, account, err := c.currentLocked()
	if err != nil {
		return nil, observe("loan", err)
	}

	value := parseAmount(amount).Floor()
	c.logger.Info("Processing loan request", "session_id", sess.ID, "username", account.Username, "amount", value)

	if !value.IsPositive() {
		return nil, observe("loan", apperrors.ErrInvalidAmount)
	}
	if !qualifiesForLoan(account, value) {
		c.logger.Warn("Loan rejected", "username", account.Username, "amount", value)
		return nil, observe("loan", apperrors.ErrLoanRejected)
	}

	sessionID, username := sess.ID, account.Username
	now := c.clock.Now()
	id := c.scheduler.Schedule(c.loanDelay, func() {
		c.completeLoan(sessionID, username, value)
	})
	observability.LoansPending.Inc()
	observe("loan", nil)

	c.logger.Info("Loan approved", "loan_id", id, "username", username, "amount", value, "delay", c.loanDelay)
	return &LoanTicket{
		ID:          id,
		Amount:      value,
		RequestedAt: now,
		DueAt:       now.Add(c.loanDelay),
	}, nil
}

func qualifiesForLoan(account *domain.Account, amount decimal.Decimal) bool {
	threshold := amount.Mul(loanCollateralRatio)
	for _, m := range account.Movements {
		if m.Amount.GreaterThanOrEqual(threshold) {
			return true
		}
	}
	return false
}

func (c *Controller) completeLoan(sessionID uuid.UUID, username string, amount decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	observability.LoansPending.Dec()

	if c.current == nil || c.current.ID != sessionID {
		c.logger.Warn("Discarding loan for ended session", "username", username, "amount", amount)
		observe("loan_credit", apperrors.ErrNotLoggedIn)
		return
	}

	err := c.store.Account().AppendMovement(username, domain.Movement{Amount: amount, Date: c.clock.Now()})
	if err != nil {
		c.logger.Error("Failed to credit loan", "username", username, "error", err)
		observe("loan_credit", err)
		return
	}

	c.resetTimerLocked()
	c.logger.Info("Loan credited", "username", username, "amount", amount)
	observe("loan_credit", nil)
}
