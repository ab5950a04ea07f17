// SPDX-License-Identifier: GPL-3.0-or-later
package interceptor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/CrawX/go-guildhush/domain"
	"github.com/CrawX/go-guildhush/hook"
	"github.com/CrawX/go-guildhush/log"
	"github.com/CrawX/go-guildhush/ratelimit"
	"github.com/CrawX/go-guildhush/suppression"
	"github.com/sirupsen/logrus"
)

// Scheduler runs a task without blocking the caller.
type Scheduler func(task func())

func Go(task func()) {
	go task()
}

// Stats counts the outcome of every event that passed the installed wrapper.
type Stats struct {
	Forwarded   uint64
	Modified    uint64
	Dropped     uint64
	RateLimited uint64
	Recovered   uint64
}

type stats struct {
	forwarded   atomic.Uint64
	modified    atomic.Uint64
	dropped     atomic.Uint64
	rateLimited atomic.Uint64
	recovered   atomic.Uint64
}

// Interceptor suppresses events of hidden guilds by wrapping the dispatch hook.
type Interceptor struct {
	mu        sync.Mutex
	installed *wrapper

	hook      *hook.Dispatch
	predicate *suppression.Predicate
	limiter   *ratelimit.Limiter
	directory domain.Directory

	schedule Scheduler
	now      func() time.Time

	stats stats
	l     *logrus.Logger
}

func NewInterceptor(
	dispatchHook *hook.Dispatch,
	predicate *suppression.Predicate,
	limiter *ratelimit.Limiter,
	directory domain.Directory,
) *Interceptor {
	if limiter == nil {
		limiter = ratelimit.Disabled()
	}
	return &Interceptor{
		hook:      dispatchHook,
		predicate: predicate,
		limiter:   limiter,
		directory: directory,
		schedule:  Go,
		now:       time.Now,
		l:         log.Logger(log.LOG_INTERCEPTOR),
	}
}

func (i *Interceptor) WithScheduler(schedule Scheduler) *Interceptor {
	i.schedule = schedule
	return i
}

func (i *Interceptor) WithClock(now func() time.Time) *Interceptor {
	i.now = now
	return i
}

// Install wraps the current dispatcher of the hook and returns it. Installing twice is a no-op
// and returns nil.
func (i *Interceptor) Install() domain.Dispatcher {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.installed != nil {
		i.l.Debug("Already installed")
		return nil
	}

	w := &wrapper{i: i}
	original := i.hook.Wrap(func(previous domain.Dispatcher) domain.Dispatcher {
		w.original = previous
		return w
	})
	i.installed = w

	i.l.Info("Installed event suppression")
	return original
}

// Uninstall puts back the dispatcher replaced by Install and returns it. Uninstalling while not
// installed is a no-op and returns nil. Calls that already entered the wrapper finish normally.
func (i *Interceptor) Uninstall() domain.Dispatcher {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.installed == nil {
		i.l.Debug("Not installed")
		return nil
	}

	w := i.installed
	replaced := i.hook.Swap(w.original)
	if replaced != domain.Dispatcher(w) {
		i.l.Warn("Dispatcher was replaced by someone else while installed, restoring original")
	}
	i.installed = nil

	i.l.Info("Uninstalled event suppression")
	return w.original
}

func (i *Interceptor) Installed() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.installed != nil
}

func (i *Interceptor) Stats() Stats {
	return Stats{
		Forwarded:   i.stats.forwarded.Load(),
		Modified:    i.stats.modified.Load(),
		Dropped:     i.stats.dropped.Load(),
		RateLimited: i.stats.rateLimited.Load(),
		Recovered:   i.stats.recovered.Load(),
	}
}

type action int

const (
	forward action = iota
	modify
	drop
)

type decision struct {
	action action
	event  *domain.Event
	ack    *domain.Event
}

type wrapper struct {
	i        *Interceptor
	original domain.Dispatcher
}

func (w *wrapper) Dispatch(event *domain.Event) error {
	d := w.i.decide(event)

	switch d.action {
	case drop:
		w.i.stats.dropped.Add(1)
		return nil
	case modify:
		w.i.stats.modified.Add(1)
	default:
		w.i.stats.forwarded.Add(1)
	}

	err := w.forward(d.event)
	if d.ack != nil {
		w.i.scheduleAck(w.original, d.ack)
	}
	return err
}

func (w *wrapper) forward(event *domain.Event) error {
	if w.original == nil {
		return hook.ErrNoDelegate
	}
	return w.original.Dispatch(event)
}

// decide never fails: anything going wrong while classifying forwards the event as it is.
func (i *Interceptor) decide(event *domain.Event) (d decision) {
	defer func() {
		if r := recover(); r != nil {
			i.stats.recovered.Add(1)
			i.l.WithField("panic", r).Error("Could not classify event, forwarding unchanged")
			d = decision{action: forward, event: event}
		}
	}()

	return i.classify(event)
}

func (i *Interceptor) classify(event *domain.Event) decision {
	unchanged := decision{action: forward, event: event}

	if !event.WellFormed() {
		return unchanged
	}

	var guildID string
	switch event.Type {
	case domain.MessageCreate:
		if event.Message != nil {
			guildID = event.Message.GuildID
		}
	case domain.ChannelUnreadUpdate, domain.MessageReactionAdd, domain.MessageReactionRemove:
		guildID = event.GuildID
	default:
		return unchanged
	}
	if guildID == "" {
		return unchanged
	}

	if !i.limiter.Admit() {
		i.stats.rateLimited.Add(1)
		i.l.WithFields(logrus.Fields{"type": event.Type, "guild": guildID}).Warn("Rate limit reached, allowing event through")
		return unchanged
	}

	if i.predicate == nil || !i.predicate.Suppressed(guildID) {
		return unchanged
	}

	fields := logrus.Fields{
		"type":   event.Type,
		"guild":  guildID,
		"reason": i.reason(guildID),
	}

	if event.Type != domain.MessageCreate {
		i.l.WithFields(fields).Debug("Dropping event")
		return decision{action: drop}
	}

	if i.directory != nil && i.directory.ViewedGuildID() == guildID {
		i.l.WithFields(fields).Debug("Allowing message, guild is being viewed")
		return unchanged
	}

	message := event.Message
	muted := i.muted(guildID)
	mentioned := message.MentionEveryone || message.MentionsUser(i.currentUserID())
	fields["muted"] = muted
	fields["mentioned"] = mentioned

	if muted && mentioned {
		i.l.WithFields(fields).Debug("Allowing mention in muted guild")
		return unchanged
	}

	modified := event.Clone()
	modified.Message.Flags |= domain.FlagSuppressNotifications

	fields["channel"] = message.ChannelID
	fields["flags"] = fmt.Sprintf("%#x -> %#x", message.Flags, modified.Message.Flags)
	i.l.WithFields(fields).Debug("Silencing message")

	return decision{
		action: modify,
		event:  modified,
		ack: &domain.Event{
			Type:      domain.MessageAck,
			ChannelID: message.ChannelID,
			MessageID: message.ID,
			Version:   i.now().UnixMilli(),
			Explicit:  false,
		},
	}
}

func (i *Interceptor) scheduleAck(original domain.Dispatcher, ack *domain.Event) {
	if original == nil {
		return
	}
	i.schedule(func() {
		defer func() {
			if r := recover(); r != nil {
				i.l.WithField("panic", r).Error("Could not acknowledge silenced message")
			}
		}()

		err := original.Dispatch(ack)
		if err != nil {
			i.l.WithError(err).WithField("channel", ack.ChannelID).Debug("Could not acknowledge silenced message")
		}
	})
}

func (i *Interceptor) muted(guildID string) bool {
	if i.directory == nil {
		return false
	}
	guild, ok := i.directory.Guild(guildID)
	return ok && guild != nil && guild.Muted
}

func (i *Interceptor) currentUserID() string {
	if i.directory == nil {
		return ""
	}
	return i.directory.CurrentUserID()
}

func (i *Interceptor) reason(guildID string) string {
	if i.predicate.IsDirect(guildID) {
		return "hidden server"
	}
	return "server in hidden folder"
}
