// Package clock supplies the current time to code that stamps records, so
// tests can pin it.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	NowUTC() time.Time
}

type Real struct{}

func NewReal() *Real {
	return &Real{}
}

func (c *Real) NowUTC() time.Time {
	return time.Now().UTC()
}

// Stub returns a fixed time until it is moved with Set or Advance.
type Stub struct {
	mu  sync.Mutex
	now time.Time
}

func NewStub(now time.Time) *Stub {
	return &Stub{now: now.UTC()}
}

func (c *Stub) NowUTC() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Stub) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now.UTC()
}

// Advance moves the clock forward by d and returns the new time.
func (c *Stub) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
