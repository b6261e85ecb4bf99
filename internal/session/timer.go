// Package session holds the logout countdown and the deferred tasks whose
// lifetime is bound to a login session.
package session

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultTimeout is how long a session survives without a successful
// mutating action.
const DefaultTimeout = 300 * time.Second

type State int

const (
	Idle State = iota
	Running
	Expired
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Timer is the inactivity countdown. A countdown is a deadline plus one
// scheduled expiry; restarting it stops the previous expiry and bumps the
// generation so a late callback from it is ignored. At most one countdown
// is live at a time.
type Timer struct {
	clock    clockwork.Clock
	timeout  time.Duration
	onExpire func()

	mu       sync.Mutex
	state    State
	deadline time.Time
	pending  clockwork.Timer
	gen      uint64
}

// NewTimer creates an idle timer. onExpire runs once per countdown that
// reaches zero, outside the timer's lock.
func NewTimer(clock clockwork.Clock, timeout time.Duration, onExpire func()) *Timer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Timer{
		clock:    clock,
		timeout:  timeout,
		onExpire: onExpire,
	}
}

// Start begins a fresh countdown, cancelling any previous one.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancelLocked()
	gen := t.gen
	t.state = Running
	t.deadline = t.clock.Now().Add(t.timeout)
	t.pending = t.clock.AfterFunc(t.timeout, func() { t.expire(gen) })
}

// Stop cancels the countdown and returns to Idle.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancelLocked()
	t.state = Idle
	t.deadline = time.Time{}
}

func (t *Timer) cancelLocked() {
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.gen++
}

func (t *Timer) expire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || t.state != Running {
		t.mu.Unlock()
		return
	}
	t.state = Expired
	t.pending = nil
	cb := t.onExpire
	t.mu.Unlock()

	if cb != nil {
		cb()
	}
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Remaining reports whole seconds left, rounded up. It is 0 unless Running.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Running {
		return 0
	}
	left := t.deadline.Sub(t.clock.Now())
	if left <= 0 {
		return 0
	}
	return int((left + time.Second - 1) / time.Second)
}

func (t *Timer) Timeout() time.Duration {
	return t.timeout
}
