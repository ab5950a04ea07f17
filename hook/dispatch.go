// SPDX-License-Identifier: GPL-3.0-or-later
package hook

import (
	"errors"
	"sync"

	"github.com/CrawX/go-guildhush/domain"
)

var ErrNoDelegate = errors.New("no dispatcher installed")

// Dispatch is the shared dispatch entry point. The delegate it forwards to can be replaced at
// any time; calls already running keep the delegate they started with.
type Dispatch struct {
	mu      sync.RWMutex
	current domain.Dispatcher
}

func NewDispatch(initial domain.Dispatcher) *Dispatch {
	return &Dispatch{
		current: initial,
	}
}

// Swap replaces the delegate and returns the previous one.
func (d *Dispatch) Swap(next domain.Dispatcher) domain.Dispatcher {
	d.mu.Lock()
	defer d.mu.Unlock()
	previous := d.current
	d.current = next
	return previous
}

// Wrap replaces the delegate with the one built from the current delegate and returns the
// delegate it replaced. No event is dispatched between reading and replacing it.
func (d *Dispatch) Wrap(wrap func(previous domain.Dispatcher) domain.Dispatcher) domain.Dispatcher {
	d.mu.Lock()
	defer d.mu.Unlock()
	previous := d.current
	d.current = wrap(previous)
	return previous
}

func (d *Dispatch) Current() domain.Dispatcher {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current
}

func (d *Dispatch) Dispatch(event *domain.Event) error {
	current := d.Current()
	if current == nil {
		return ErrNoDelegate
	}
	return current.Dispatch(event)
}

var _ domain.Dispatcher = (*Dispatch)(nil)
