// SPDX-License-Identifier: GPL-3.0-or-later
package suppression

// Mode is the snapshot of the settings a decision is made with.
type Mode struct {
	Enabled              bool
	OnlyWhileStreaming   bool
	IsCurrentlyStreaming bool
}

// ModeSource is read on every decision, the settings and the streaming state change at runtime.
type ModeSource interface {
	Mode() Mode
}

type ModeFunc func() Mode

func (f ModeFunc) Mode() Mode {
	return f()
}

// Membership is the part of the hidden store the predicate needs.
type Membership interface {
	IsHiddenServer(id string) bool
	IsGroupSuppressedMembership(id string) bool
}

type Predicate struct {
	membership Membership
	mode       ModeSource
}

func NewPredicate(membership Membership, mode ModeSource) *Predicate {
	return &Predicate{
		membership: membership,
		mode:       mode,
	}
}

// ShouldSuppressGroup decides whether events of a guild are suppressed under the given mode.
func (p *Predicate) ShouldSuppressGroup(id string, mode Mode) bool {
	if !mode.Enabled {
		return false
	}
	if id == "" || p.membership == nil {
		return false
	}

	hidden := p.membership.IsGroupSuppressedMembership(id)
	if mode.OnlyWhileStreaming {
		return hidden && mode.IsCurrentlyStreaming
	}
	return hidden
}

// Suppressed evaluates ShouldSuppressGroup with the current mode of the predicate's source.
func (p *Predicate) Suppressed(id string) bool {
	return p.ShouldSuppressGroup(id, p.Mode())
}

func (p *Predicate) Mode() Mode {
	if p.mode == nil {
		return Mode{}
	}
	return p.mode.Mode()
}

// IsDirect reports whether a guild is hidden by itself rather than through a folder.
func (p *Predicate) IsDirect(id string) bool {
	return p.membership != nil && p.membership.IsHiddenServer(id)
}

// WithMode returns a predicate over the same membership reading another mode source.
func (p *Predicate) WithMode(mode ModeSource) *Predicate {
	return NewPredicate(p.membership, mode)
}
