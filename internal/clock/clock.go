package clock

import (
	"sync"
	"time"

	"github.com/osse101/zephyr/internal/domain"
)

// Clock provides the current instant and the student's calendar day
type Clock interface {
	// Now returns the current time
	Now() time.Time
	// Today returns the calendar day of Now in the clock's zone
	Today() domain.Day
	// Location returns the zone calendar days are computed in
	Location() *time.Location
}

// RealClock uses the actual system time
type RealClock struct {
	loc *time.Location
}

// NewRealClock creates a new RealClock computing days in loc (UTC when nil)
func NewRealClock(loc *time.Location) *RealClock {
	if loc == nil {
		loc = time.UTC
	}
	return &RealClock{loc: loc}
}

// Now returns the current system time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the current calendar day in the clock's zone
func (c *RealClock) Today() domain.Day {
	return domain.DayOf(time.Now().In(c.loc))
}

// Location returns the clock's zone
func (c *RealClock) Location() *time.Location {
	return c.loc
}

// SimulatedClock allows time manipulation for testing and replay
type SimulatedClock struct {
	mu      sync.RWMutex
	current time.Time
	loc     *time.Location
}

// NewSimulatedClock creates a new SimulatedClock starting at the given time.
// Days are computed in start's location.
func NewSimulatedClock(start time.Time) *SimulatedClock {
	return &SimulatedClock{
		current: start,
		loc:     start.Location(),
	}
}

// Now returns the simulated current time
func (c *SimulatedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Today returns the simulated calendar day
func (c *SimulatedClock) Today() domain.Day {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.DayOf(c.current.In(c.loc))
}

// Location returns the simulated zone
func (c *SimulatedClock) Location() *time.Location {
	return c.loc
}

// Advance moves the simulated time forward by the given duration
func (c *SimulatedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// AdvanceDays moves the simulated time forward by whole calendar days
func (c *SimulatedClock) AdvanceDays(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.AddDate(0, 0, days)
}

// Set sets the simulated time to a specific value
func (c *SimulatedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// LoadLocation resolves an IANA zone name; an empty name means UTC
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}
