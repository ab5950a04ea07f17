// SPDX-License-Identifier: GPL-3.0-or-later
package guildhush

import (
	"fmt"
	"sync"

	"github.com/CrawX/go-guildhush/domain"
	"github.com/CrawX/go-guildhush/hidden"
	"github.com/CrawX/go-guildhush/hook"
	"github.com/CrawX/go-guildhush/interceptor"
	"github.com/CrawX/go-guildhush/log"
	"github.com/CrawX/go-guildhush/lookupfilter"
	"github.com/CrawX/go-guildhush/ratelimit"
	"github.com/CrawX/go-guildhush/reconcile"
	"github.com/CrawX/go-guildhush/suppression"
	"github.com/CrawX/go-guildhush/visibility"

	"github.com/sirupsen/logrus"
)

// Engine hides guilds and folders and suppresses what they would signal to the user.
type Engine struct {
	directory domain.Directory

	store         *hidden.Store
	predicate     *suppression.Predicate
	quickSwitcher *suppression.Predicate
	interceptor   *interceptor.Interceptor
	filter        *lookupfilter.Filter
	batcher       *reconcile.Batcher
	sink          visibility.Sink

	mu                  sync.Mutex
	started             bool
	suppressionEnabled  bool
	onlyHideInStream    bool
	hideInQuickSwitcher bool
	autoClearMentions   bool
	snapshot            visibility.Snapshot

	l *logrus.Logger
}

func NewEngine(directory domain.Directory, persistence domain.HiddenPersistence, dispatchHook *hook.Dispatch, searchHook *hook.Search, configFunc ...ConfigFunc) (*Engine, error) {
	config := &configuration{}
	for _, f := range configFunc {
		err := f(config)
		if err != nil {
			return nil, fmt.Errorf("error applying configuration: %w", err)
		}
	}

	if directory == nil {
		return nil, fmt.Errorf("directory cannot be nil")
	}
	if dispatchHook == nil || searchHook == nil {
		return nil, fmt.Errorf("dispatch and search hooks cannot be nil")
	}

	e := &Engine{
		directory:           directory,
		sink:                visibility.NoopSink{},
		suppressionEnabled:  !config.SuppressionOff,
		onlyHideInStream:    config.OnlyHideInStream,
		hideInQuickSwitcher: !config.ShowInQuickSwitcher,
		autoClearMentions:   config.AutoClearMentions,
		l:                   log.Logger(log.LOG_ENGINE),
	}
	if config.Sink != nil {
		e.sink = config.Sink
	}

	var limiter *ratelimit.Limiter
	switch {
	case config.NoRateLimit:
		limiter = ratelimit.Disabled()
	case config.RateLimit > 0:
		limiter = ratelimit.NewLimiter(uint32(config.RateLimit))
	default:
		limiter = ratelimit.NewLimiter(ratelimit.DefaultCapacity)
	}

	e.store = hidden.NewStore(directory, persistence)
	e.predicate = suppression.NewPredicate(e.store, suppression.ModeFunc(e.eventMode))
	e.quickSwitcher = e.predicate.WithMode(suppression.ModeFunc(e.quickSwitcherMode))
	e.interceptor = interceptor.NewInterceptor(dispatchHook, e.predicate, limiter, directory)
	e.filter = lookupfilter.NewFilter(searchHook, e.quickSwitcher)
	e.batcher = reconcile.NewBatcher(e.store, e.predicate, directory, dispatchHook)

	if config.Scheduler != nil {
		e.interceptor.WithScheduler(config.Scheduler)
	}
	if config.Clock != nil {
		limiter.WithClock(config.Clock)
		e.interceptor.WithClock(config.Clock)
		e.batcher.WithClock(config.Clock)
	}

	e.store.OnChange(e.refreshVisibility)

	return e, nil
}

func (e *Engine) eventMode() suppression.Mode {
	e.mu.Lock()
	enabled, onlyInStream := e.suppressionEnabled, e.onlyHideInStream
	e.mu.Unlock()

	return suppression.Mode{
		Enabled:              enabled,
		OnlyWhileStreaming:   onlyInStream,
		IsCurrentlyStreaming: e.directory.IsStreaming(),
	}
}

func (e *Engine) quickSwitcherMode() suppression.Mode {
	e.mu.Lock()
	enabled, onlyInStream := e.hideInQuickSwitcher, e.onlyHideInStream
	e.mu.Unlock()

	return suppression.Mode{
		Enabled:              enabled,
		OnlyWhileStreaming:   onlyInStream,
		IsCurrentlyStreaming: e.directory.IsStreaming(),
	}
}

// Start loads the hidden items and installs the event suppression and the quick switcher
// filter as configured. Starting a started engine does nothing.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return
	}
	e.started = true
	suppressionEnabled, autoClear, quickSwitcher := e.suppressionEnabled, e.autoClearMentions, e.hideInQuickSwitcher
	e.mu.Unlock()

	e.store.Load()

	if suppressionEnabled {
		e.interceptor.Install()
		if autoClear {
			e.ReconcileHiddenUnread()
		}
	} else {
		e.interceptor.Uninstall()
	}

	if quickSwitcher {
		e.filter.Install()
	}

	e.l.WithFields(logrus.Fields{
		"suppression":   suppressionEnabled,
		"autoclear":     autoClear,
		"quickswitcher": quickSwitcher,
	}).Info("Started")
}

// Stop removes everything Start installed. It is safe to call more than once.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.started = false
	e.mu.Unlock()

	e.interceptor.Uninstall()
	e.filter.Uninstall()
	e.sink.Apply(visibility.Derive(nil, nil, false))

	e.l.Info("Stopped")
}

func (e *Engine) SetOnlyHideInStream(onlyHideInStream bool) {
	e.mu.Lock()
	e.onlyHideInStream = onlyHideInStream
	e.mu.Unlock()

	e.l.WithField("onlyhideinstream", onlyHideInStream).Info("Setting changed")
	e.refreshVisibility()
}

// SetHideInQuickSwitcher installs or removes the quick switcher filter of a started engine.
func (e *Engine) SetHideInQuickSwitcher(hide bool) {
	e.mu.Lock()
	e.hideInQuickSwitcher = hide
	started := e.started
	e.mu.Unlock()

	e.l.WithField("hideinquickswitcher", hide).Info("Setting changed")
	if !started {
		return
	}
	if hide {
		e.filter.Install()
	} else {
		e.filter.Uninstall()
	}
}

// StreamerModeChanged re-derives the guild list when the client enters or leaves streamer mode.
func (e *Engine) StreamerModeChanged() {
	e.refreshVisibility()
}

func (e *Engine) refreshVisibility() {
	mode := e.eventMode()
	enabled := !mode.OnlyWhileStreaming || mode.IsCurrentlyStreaming
	snapshot := visibility.Derive(e.store, e.directory.Folders(), enabled)

	e.mu.Lock()
	e.snapshot = snapshot
	e.mu.Unlock()

	e.sink.Apply(snapshot)
}

func (e *Engine) Visibility() visibility.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot
}

func (e *Engine) Hidden() *hidden.Store {
	return e.store
}

func (e *Engine) ToggleServer(id string) (bool, error) {
	return e.store.ToggleServer(id)
}

func (e *Engine) ToggleFolder(id string) (bool, error) {
	return e.store.ToggleFolder(id)
}

func (e *Engine) ClearServers() error {
	return e.store.ClearServers()
}

func (e *Engine) ClearFolders() error {
	return e.store.ClearFolders()
}

// ShouldSuppressGroup reports whether events of a guild are currently suppressed.
func (e *Engine) ShouldSuppressGroup(id string) bool {
	return e.predicate.Suppressed(id)
}

// ReconcileHiddenUnread acknowledges unread channels of suppressed guilds. Nothing is
// acknowledged while hiding is limited to streamer mode and the client is not streaming.
func (e *Engine) ReconcileHiddenUnread() *reconcile.Result {
	mode := e.eventMode()
	if mode.OnlyWhileStreaming && !mode.IsCurrentlyStreaming {
		e.l.Warn("Skipping clearing of hidden mentions, only hiding in streamer mode and not streaming")
		return &reconcile.Result{Items: []domain.AckItem{}, Errors: []string{}}
	}
	return e.batcher.ReconcileHiddenUnread()
}

func (e *Engine) Stats() interceptor.Stats {
	return e.interceptor.Stats()
}

func (e *Engine) SuppressionInstalled() bool {
	return e.interceptor.Installed()
}

func (e *Engine) QuickSwitcherFilterInstalled() bool {
	return e.filter.Installed()
}
