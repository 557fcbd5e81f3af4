package services

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

// monotonicClock never hands out the same instant twice. Values are
// truncated to milliseconds, the precision the document store keeps, so
// ordering survives a round trip through storage.
type monotonicClock struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

func NewClock() Clock {
	return NewMonotonicClock(time.Now)
}

func NewMonotonicClock(now func() time.Time) Clock {
	return &monotonicClock{now: now}
}

func (c *monotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC().Truncate(time.Millisecond)
	if !t.After(c.last) {
		t = c.last.Add(time.Millisecond)
	}
	c.last = t
	return t
}
