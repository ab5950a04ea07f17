// SPDX-License-Identifier: GPL-3.0-or-later
package lookupfilter

import (
	"sync"

	"github.com/CrawX/go-guildhush/domain"
	"github.com/CrawX/go-guildhush/hook"
	"github.com/CrawX/go-guildhush/log"
	"github.com/sirupsen/logrus"
)

// Suppressor answers whether results of a guild are hidden.
type Suppressor interface {
	Suppressed(guildID string) bool
}

// Filter removes hidden guilds and their channels from the quick switcher results.
type Filter struct {
	mu        sync.Mutex
	installed bool
	guilds    domain.GuildQuery
	channels  domain.ChannelQuery

	search     *hook.Search
	suppressor Suppressor

	l *logrus.Logger
}

func NewFilter(search *hook.Search, suppressor Suppressor) *Filter {
	return &Filter{
		search:     search,
		suppressor: suppressor,
		l:          log.Logger(log.LOG_LOOKUPFILTER),
	}
}

// Install wraps both lookups. Installing twice is a no-op and reports false.
func (f *Filter) Install() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.installed {
		f.l.Debug("Already installed")
		return false
	}

	f.guilds, f.channels = f.search.Wrap(
		func(previous domain.GuildQuery) domain.GuildQuery {
			if previous == nil {
				return nil
			}
			return func(query string, limit int) []domain.SearchResult {
				return f.filter(previous(query, limit), guildOf)
			}
		},
		func(previous domain.ChannelQuery) domain.ChannelQuery {
			if previous == nil {
				return nil
			}
			return func(query string, limit int) []domain.SearchResult {
				return f.filter(previous(query, limit), channelGuildOf)
			}
		},
	)
	f.installed = true

	f.l.Info("Installed quick switcher filter")
	return true
}

// Uninstall restores both lookups replaced by Install. Uninstalling while not installed is a
// no-op and reports false.
func (f *Filter) Uninstall() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.installed {
		f.l.Debug("Not installed")
		return false
	}

	f.search.Restore(f.guilds, f.channels)
	f.guilds, f.channels = nil, nil
	f.installed = false

	f.l.Info("Uninstalled quick switcher filter")
	return true
}

func (f *Filter) Installed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.installed
}

func guildOf(result domain.SearchResult) string {
	if result.Record == nil {
		return ""
	}
	if result.Record.ID != "" {
		return result.Record.ID
	}
	if result.Record.Guild != nil {
		return result.Record.Guild.ID
	}
	return result.Record.GuildID
}

func channelGuildOf(result domain.SearchResult) string {
	if result.Record == nil {
		return ""
	}
	return result.Record.GuildID
}

// filter keeps the order of the results. A result whose guild can not be told, or that could
// not be classified, is kept.
func (f *Filter) filter(results []domain.SearchResult, guildID func(domain.SearchResult) string) []domain.SearchResult {
	kept := make([]domain.SearchResult, 0, len(results))
	removed := 0
	for _, result := range results {
		if f.hidden(guildID(result)) {
			removed++
			continue
		}
		kept = append(kept, result)
	}

	if removed > 0 {
		f.l.WithFields(logrus.Fields{"removed": removed, "kept": len(kept)}).Debug("Filtered results")
	}
	return kept
}

func (f *Filter) hidden(guildID string) (hidden bool) {
	if guildID == "" || f.suppressor == nil {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			f.l.WithField("panic", r).Error("Could not classify result, keeping it")
			hidden = false
		}
	}()
	return f.suppressor.Suppressed(guildID)
}
