package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Scheduler runs deferred tasks on a clock and can cancel them as a group
// when the session that scheduled them ends.
type Scheduler struct {
	clock clockwork.Clock

	mu    sync.Mutex
	tasks map[uuid.UUID]clockwork.Timer
}

func NewScheduler(clock clockwork.Clock) *Scheduler {
	return &Scheduler{
		clock: clock,
		tasks: make(map[uuid.UUID]clockwork.Timer),
	}
}

// Schedule runs fn after delay unless the task is cancelled first.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) uuid.UUID {
	id := uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[id] = s.clock.AfterFunc(delay, func() {
		if s.take(id) {
			fn()
		}
	})
	return id
}

func (s *Scheduler) take(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	return true
}

// Cancel stops a single task. It reports false when the task already ran
// or was never scheduled.
func (s *Scheduler) Cancel(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.tasks[id]
	if !ok {
		return false
	}
	timer.Stop()
	delete(s.tasks, id)
	return true
}

// CancelAll stops every pending task and returns how many were stopped.
func (s *Scheduler) CancelAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.tasks)
	for id, timer := range s.tasks {
		timer.Stop()
		delete(s.tasks, id)
	}
	return n
}

func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
