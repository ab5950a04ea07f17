// SPDX-License-Identifier: GPL-3.0-or-later
package hook

import (
	"sync"

	"github.com/CrawX/go-guildhush/domain"
)

// Search holds the guild and channel lookups of the quick switcher. Both are replaced
// independently.
type Search struct {
	mu       sync.RWMutex
	guilds   domain.GuildQuery
	channels domain.ChannelQuery
}

func NewSearch(guilds domain.GuildQuery, channels domain.ChannelQuery) *Search {
	return &Search{
		guilds:   guilds,
		channels: channels,
	}
}

func (s *Search) SwapGuilds(next domain.GuildQuery) domain.GuildQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.guilds
	s.guilds = next
	return previous
}

func (s *Search) SwapChannels(next domain.ChannelQuery) domain.ChannelQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.channels
	s.channels = next
	return previous
}

// Wrap replaces both lookups with the ones built from the current lookups and returns the
// replaced ones.
func (s *Search) Wrap(
	wrapGuilds func(previous domain.GuildQuery) domain.GuildQuery,
	wrapChannels func(previous domain.ChannelQuery) domain.ChannelQuery,
) (domain.GuildQuery, domain.ChannelQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	guilds, channels := s.guilds, s.channels
	s.guilds = wrapGuilds(guilds)
	s.channels = wrapChannels(channels)
	return guilds, channels
}

// Restore sets both lookups at once and returns the replaced ones.
func (s *Search) Restore(guilds domain.GuildQuery, channels domain.ChannelQuery) (domain.GuildQuery, domain.ChannelQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	previousGuilds, previousChannels := s.guilds, s.channels
	s.guilds, s.channels = guilds, channels
	return previousGuilds, previousChannels
}

func (s *Search) Guilds() domain.GuildQuery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guilds
}

func (s *Search) Channels() domain.ChannelQuery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.channels
}

// QueryGuilds returns no results while no guild lookup is set.
func (s *Search) QueryGuilds(query string, limit int) []domain.SearchResult {
	guilds := s.Guilds()
	if guilds == nil {
		return []domain.SearchResult{}
	}
	return guilds(query, limit)
}

func (s *Search) QueryChannels(query string, limit int) []domain.SearchResult {
	channels := s.Channels()
	if channels == nil {
		return []domain.SearchResult{}
	}
	return channels(query, limit)
}
