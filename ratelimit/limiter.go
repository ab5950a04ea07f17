// SPDX-License-Identifier: GPL-3.0-or-later
package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultWindow   = time.Second
	DefaultCapacity = 10
)

// Limiter caps the number of admitted decisions per fixed window. A window is not refilled
// partially: the count resets once the window has fully passed.
type Limiter struct {
	mu          sync.Mutex
	windowStart time.Time
	count       uint32
	capacity    uint32
	window      time.Duration
	disabled    bool
	now         func() time.Time
}

func NewLimiter(capacity uint32) *Limiter {
	return &Limiter{
		capacity: capacity,
		window:   DefaultWindow,
		now:      time.Now,
	}
}

// Disabled returns a limiter admitting every call.
func Disabled() *Limiter {
	return &Limiter{
		disabled: true,
		now:      time.Now,
	}
}

func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
	return l
}

func (l *Limiter) WithWindow(window time.Duration) *Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.window = window
	return l
}

// Admit reports whether one more decision fits into the current window and counts it if so.
func (l *Limiter) Admit() bool {
	if l.disabled {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.windowStart) > l.window {
		l.windowStart = now
		l.count = 0
	}
	if l.count >= l.capacity {
		return false
	}
	l.count++
	return true
}

func (l *Limiter) Capacity() uint32 {
	return l.capacity
}
