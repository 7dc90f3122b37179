package anim

import (
	"sync"
	"time"
)

// Scheduler runs fn every interval until the returned cancel func is called.
// Calls to fn never overlap.
type Scheduler interface {
	Schedule(interval time.Duration, fn func()) (cancel func())
}

// TickerScheduler fires fn from a dedicated goroutine on a time.Ticker. A
// slow fn delays later ticks instead of stacking them.
type TickerScheduler struct{}

// Schedule's cancel blocks until the goroutine has exited. It must not be
// called from inside fn.
func (TickerScheduler) Schedule(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-exited
		})
	}
}

// ManualScheduler leaves the cadence to the host: Fire runs the callback
// once. Event loops such as bubbletea and tests drive ticks through it.
type ManualScheduler struct {
	mu       sync.Mutex
	fn       func()
	interval time.Duration
	active   bool
}

func (m *ManualScheduler) Schedule(interval time.Duration, fn func()) func() {
	m.mu.Lock()
	m.fn, m.interval, m.active = fn, interval, true
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		m.active = false
		m.mu.Unlock()
	}
}

// Fire invokes the scheduled callback even after cancellation, like a timer
// event already queued when it was cleared. It reports whether the schedule
// was still active.
func (m *ManualScheduler) Fire() bool {
	m.mu.Lock()
	fn, active := m.fn, m.active
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
	return active
}

func (m *ManualScheduler) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *ManualScheduler) Interval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interval
}
