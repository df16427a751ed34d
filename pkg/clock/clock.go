// Package clock supplies the current instant to code that derives
// calendar-dependent state, so the instant can be pinned in tests.
package clock

import (
	"sync"
	"time"

	"cloud.google.com/go/civil"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Today returns the calendar date of c's current instant in loc.
// A nil loc is treated as UTC.
func Today(c Clock, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.UTC
	}
	return civil.DateOf(c.Now().In(loc))
}

// Manual is a Clock that only moves when told to.
type Manual struct {
	mu  sync.RWMutex
	now time.Time
}

func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

// NewManualOnDate pins the clock to noon UTC of d.
func NewManualOnDate(d civil.Date) *Manual {
	return NewManual(d.In(time.UTC).Add(12 * time.Hour))
}

func (m *Manual) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
