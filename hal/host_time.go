//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

// hostTime is the uptime clock. It only moves when the host loop steps it, so
// every read within one frame sees the same time.
type hostTime struct {
	mu    sync.Mutex
	now   time.Duration
	fixed time.Duration

	last  time.Time
	wallf func() time.Time
}

func newHostTime(fixed time.Duration) *hostTime {
	return &hostTime{fixed: fixed, wallf: time.Now}
}

func (t *hostTime) Now() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now
}

func (t *hostTime) step() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.fixed > 0 {
		t.now += t.fixed
		return
	}
	now := t.wallf()
	if t.last.IsZero() {
		t.last = now
		return
	}
	if d := now.Sub(t.last); d > 0 {
		t.now += d
	}
	t.last = now
}
