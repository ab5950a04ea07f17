// SPDX-License-Identifier: GPL-3.0-or-later
package domain

type SearchRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	GuildID string `json:"guild_id,omitempty"`
	Guild   *Guild `json:"guild,omitempty"`
}

type SearchResult struct {
	Type   string        `json:"type"`
	Record *SearchRecord `json:"record,omitempty"`
	Score  int           `json:"score"`
}

const (
	SearchResultGuild   = "GUILD"
	SearchResultChannel = "TEXT_CHANNEL"
)

// GuildQuery and ChannelQuery are the quick switcher lookups.
type GuildQuery func(query string, limit int) []SearchResult

type ChannelQuery func(query string, limit int) []SearchResult
