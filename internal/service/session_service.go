package service

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"bankist/internal/domain"
	apperrors "bankist/internal/errors"
	"bankist/internal/format"
	"bankist/internal/observability"
	"bankist/internal/repository"
	"bankist/internal/session"
)

// Session is the single logged-in session. It lives from login until
// logout, timeout or account closure.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Sorted    bool      `json:"sorted"`
	StartedAt time.Time `json:"started_at"`
	// AsOf is the localized date/time captured at login
	AsOf string `json:"as_of"`
}

const (
	endLogout  = "logout"
	endTimeout = "timeout"
	endClosed  = "closed"
	endRelogin = "relogin"
)

type Options struct {
	SessionTimeout time.Duration
	LoanDelay      time.Duration
}

// Controller validates and applies user actions against the account store
// and the one session it owns. Every operation, the expiry callback and loan
// completion run under mu.
type Controller struct {
	store     *repository.Store
	clock     clockwork.Clock
	timer     *session.Timer
	scheduler *session.Scheduler
	loanDelay time.Duration
	logger    *slog.Logger

	mu      sync.Mutex
	current *Session
}

func NewController(store *repository.Store, clock clockwork.Clock, opts Options, logger *slog.Logger) *Controller {
	c := &Controller{
		store:     store,
		clock:     clock,
		scheduler: session.NewScheduler(clock),
		loanDelay: opts.LoanDelay,
		logger:    logger,
	}
	c.timer = session.NewTimer(clock, opts.SessionTimeout, c.expireSession)
	return c
}

// Login starts a session for username when pin matches. Unknown users and
// wrong pins leave any existing session as it was; there is no lockout.
func (c *Controller) Login(username, pin string) (*Dashboard, error) {
	username = strings.TrimSpace(username)
	c.logger.Info("Processing login", "username", username)

	c.mu.Lock()
	defer c.mu.Unlock()

	account, err := c.store.Account().GetAccount(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			err = apperrors.ErrUserNotFound
		}
		return nil, observe("login", err)
	}

	if p, ok := parsePIN(pin); !ok || p != account.PIN {
		c.logger.Warn("Login rejected", "username", username, "reason", "pin mismatch")
		return nil, observe("login", apperrors.ErrInvalidPIN)
	}

	c.endSessionLocked(endRelogin)

	now := c.clock.Now()
	c.current = &Session{
		ID:        uuid.New(),
		Username:  account.Username,
		StartedAt: now,
		AsOf:      format.DateTime(now, account.Locale),
	}
	c.timer.Start()

	c.logger.Info("Login successful", "username", account.Username, "session_id", c.current.ID)
	observe("login", nil)
	return c.dashboardLocked(account, c.current.Sorted), nil
}

// Logout ends the current session, if any.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.endSessionLocked(endLogout)
}

// Session returns a copy of the current session.
func (c *Controller) Session() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return Session{}, false
	}
	return *c.current, true
}

// TimerState reports the countdown state and whole seconds left.
func (c *Controller) TimerState() (session.State, int) {
	return c.timer.State(), c.timer.Remaining()
}

// PendingLoans is the number of approved loans not yet credited.
func (c *Controller) PendingLoans() int {
	return c.scheduler.Pending()
}

// currentLocked loads the account of the active session.
func (c *Controller) currentLocked() (*Session, *domain.Account, error) {
	if c.current == nil {
		return nil, nil, apperrors.ErrNotLoggedIn
	}

	account, err := c.store.Account().GetAccount(c.current.Username)
	if err != nil {
		c.logger.Error("Session account vanished", "username", c.current.Username, "error", err)
		c.endSessionLocked(endClosed)
		return nil, nil, apperrors.ErrNotLoggedIn
	}
	return c.current, account, nil
}

// endSessionLocked clears the session, stops the countdown and cancels
// loans that have not been credited yet.
func (c *Controller) endSessionLocked(reason string) {
	if c.current == nil {
		return
	}

	cancelled := c.scheduler.CancelAll()
	observability.LoansPending.Sub(float64(cancelled))
	c.timer.Stop()

	c.logger.Info("Session ended",
		"username", c.current.Username,
		"session_id", c.current.ID,
		"reason", reason,
		"cancelled_loans", cancelled)
	observability.SessionsEnded.WithLabelValues(reason).Inc()
	c.current = nil
}

func (c *Controller) expireSession() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// a successful action may have restarted the countdown meanwhile
	if c.timer.State() != session.Expired {
		return
	}
	c.endSessionLocked(endTimeout)
	c.timer.Stop()
}

// resetTimerLocked restarts the countdown after a successful mutating action.
func (c *Controller) resetTimerLocked() {
	if c.current != nil {
		c.timer.Start()
	}
}

func observe(operation string, err error) error {
	outcome := "ok"
	if err != nil {
		outcome = string(apperrors.InternalError)
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			outcome = string(appErr.Code)
		}
	}
	observability.Operations.WithLabelValues(operation, outcome).Inc()
	return err
}
