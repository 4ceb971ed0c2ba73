package scheduler

import (
	"sync"
	"time"
)

// Manual is a Scheduler for tests: nothing runs until Fire is called.
type Manual struct {
	mu      sync.Mutex
	pending map[string]pendingEntry
}

type pendingEntry struct {
	delay time.Duration
	fn    func()
}

// NewManual returns a manually driven scheduler
func NewManual() *Manual {
	return &Manual{pending: make(map[string]pendingEntry)}
}

var _ Scheduler = (*Manual)(nil)

// Schedule arms fn under key without starting any timer
func (m *Manual) Schedule(key string, d time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[key] = pendingEntry{delay: d, fn: fn}
}

// Cancel disarms the callback for key
func (m *Manual) Cancel(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, key)
}

// CancelAll disarms every pending callback
func (m *Manual) CancelAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = make(map[string]pendingEntry)
}

// Fire runs and removes the callback for key, returning false when no
// callback was pending.
func (m *Manual) Fire(key string) bool {
	m.mu.Lock()
	entry, ok := m.pending[key]
	if ok {
		delete(m.pending, key)
	}
	m.mu.Unlock()

	if !ok {
		return false
	}
	entry.fn()
	return true
}

// Pending reports whether a callback is armed for key
func (m *Manual) Pending(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.pending[key]
	return ok
}

// PendingCount returns the number of armed callbacks
func (m *Manual) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Delay returns the delay the callback for key was armed with
func (m *Manual) Delay(key string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.pending[key]
	return entry.delay, ok
}
