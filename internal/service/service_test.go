package service

import (
	"sync"
	"time"
)

// stepClock 每次调用前进 step，用来观察 updatedAt 的变化
type stepClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), step: time.Second}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

func intPtr(v int) *int { return &v }
