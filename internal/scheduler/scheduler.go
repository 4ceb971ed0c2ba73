// Package scheduler provides cancelable, key-addressed one-shot timers.
// The engine routes every delayed action through a Scheduler so that
// session teardown can cancel all outstanding work, and so tests can fire
// timers deterministically.
package scheduler

import (
	"sync"
	"time"
)

//go:generate mockgen -destination=mock/mock.go -package=schedulermock github.com/arenaforge/arena-api/internal/scheduler Scheduler

// Scheduler schedules one callback per key. Scheduling on a key that
// already has a pending callback replaces it.
type Scheduler interface {
	// Schedule arms fn to run after d. Any pending callback on the same
	// key is canceled first.
	Schedule(key string, d time.Duration, fn func())

	// Cancel disarms the callback for key, if any
	Cancel(key string)

	// CancelAll disarms every pending callback
	CancelAll()
}

type realScheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New returns a Scheduler backed by real timers
func New() Scheduler {
	return &realScheduler{timers: make(map[string]*time.Timer)}
}

func (s *realScheduler) Schedule(key string, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[key]; ok {
		t.Stop()
	}
	s.timers[key] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, key)
		s.mu.Unlock()
		fn()
	})
}

func (s *realScheduler) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
}

func (s *realScheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}
