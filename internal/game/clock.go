package game

import (
	"sync"
	"time"
)

// Clock supplies the engine's notion of "now". Streaks and daily missions
// key on device-local calendar dates, so everything date-shaped goes
// through here rather than calling time.Now directly.
type Clock interface {
	Now() time.Time
}

// WallClock is the production clock.
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to, which lets tests replay day
// rollovers and streak gaps deterministically.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set jumps the clock to an absolute moment.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// localDate formats a moment as the device-local calendar date key used by
// the daily cycle.
func localDate(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}
