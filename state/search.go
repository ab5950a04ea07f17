// SPDX-License-Identifier: GPL-3.0-or-later
package state

import (
	"sort"
	"strings"

	"github.com/CrawX/go-guildhush/domain"
)

const (
	scoreContains = 1
	scorePrefix   = 2
)

func score(name, query string) int {
	name = strings.ToLower(name)
	switch {
	case query == "":
		return scoreContains
	case strings.HasPrefix(name, query):
		return scorePrefix
	case strings.Contains(name, query):
		return scoreContains
	}
	return 0
}

// sortAndLimit orders by score, then name. A limit below 1 returns every result.
func sortAndLimit(results []domain.SearchResult, limit int) []domain.SearchResult {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Record.Name < results[j].Record.Name
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// SearchGuilds matches guild names case insensitively.
func (c *Cache) SearchGuilds(query string, limit int) []domain.SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))

	c.mu.RLock()
	results := []domain.SearchResult{}
	for _, id := range c.guildOrder {
		guild := c.guilds[id]
		s := score(guild.Name, query)
		if s == 0 {
			continue
		}
		results = append(results, domain.SearchResult{
			Type:   domain.SearchResultGuild,
			Record: &domain.SearchRecord{ID: guild.ID, Name: guild.Name},
			Score:  s,
		})
	}
	c.mu.RUnlock()

	return sortAndLimit(results, limit)
}

// SearchChannels matches channel names case insensitively.
func (c *Cache) SearchChannels(query string, limit int) []domain.SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))

	c.mu.RLock()
	results := []domain.SearchResult{}
	for _, id := range c.guildOrder {
		for _, channelID := range c.byGuild[id] {
			channel := c.channels[channelID]
			if channel.ID == id {
				continue
			}
			s := score(channel.Name, query)
			if s == 0 {
				continue
			}
			results = append(results, domain.SearchResult{
				Type:   domain.SearchResultChannel,
				Record: &domain.SearchRecord{ID: channel.ID, Name: channel.Name, GuildID: channel.GuildID},
				Score:  s,
			})
		}
	}
	c.mu.RUnlock()

	return sortAndLimit(results, limit)
}
