// SPDX-License-Identifier: GPL-3.0-or-later
package state

import (
	"testing"

	"github.com/CrawX/go-guildhush/domain"
	"github.com/CrawX/go-guildhush/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ready() *domain.Event {
	return &domain.Event{
		Type: domain.Ready,
		Ready: &domain.ReadyState{
			User: domain.User{ID: "me"},
			Guilds: []domain.Guild{
				{ID: "g1", Name: "Gophers"},
				{ID: "g2", Name: "Rustaceans", Muted: true},
				{ID: "g3", Name: "Go Time"},
			},
			Folders: []domain.Folder{
				{ID: "f1", Name: "Languages", GuildIDs: []string{"g1", "g2"}},
			},
			Channels: []domain.Channel{
				{ID: "g1", GuildID: "g1", Name: "root"},
				{ID: "c1", GuildID: "g1", Name: "general"},
				{ID: "c2", GuildID: "g1", Name: "generics"},
				{ID: "c3", GuildID: "g2", Name: "general"},
			},
			ReadStates: map[string]domain.ReadState{
				"c1": {HasUnread: true, MentionCount: 1, LastMessageID: "100"},
			},
		},
	}
}

func newCache(t *testing.T) *Cache {
	log.InitLogging("error")
	c := NewCache()
	require.NoError(t, c.Dispatch(ready()))
	return c
}

func message(channelID, guildID, author string, mentions ...string) *domain.Event {
	users := []domain.User{}
	for _, id := range mentions {
		users = append(users, domain.User{ID: id})
	}
	return &domain.Event{
		Type: domain.MessageCreate,
		Message: &domain.Message{
			ID:        "m-" + channelID,
			ChannelID: channelID,
			GuildID:   guildID,
			Author:    domain.User{ID: author},
			Mentions:  users,
		},
	}
}

func TestCache_Ready(t *testing.T) {
	c := newCache(t)

	assert.Equal(t, "me", c.CurrentUserID())
	assert.Equal(t, "", c.ViewedGuildID())

	guild, ok := c.Guild("g2")
	assert.True(t, ok)
	assert.True(t, guild.Muted)

	_, ok = c.Guild("unknown")
	assert.False(t, ok)

	members, ok := c.FolderMembers("f1")
	assert.True(t, ok)
	assert.Equal(t, []string{"g1", "g2"}, members)
	_, ok = c.FolderMembers("f2")
	assert.False(t, ok)

	channels, err := c.Channels("g1")
	assert.NoError(t, err)
	assert.Len(t, channels, 3)

	_, err = c.Channels("unknown")
	assert.ErrorIs(t, err, ErrUnknownGuild)

	state, err := c.ReadState("c1")
	assert.NoError(t, err)
	assert.Equal(t, domain.ReadState{HasUnread: true, MentionCount: 1, LastMessageID: "100"}, state)

	state, err = c.ReadState("c2")
	assert.NoError(t, err)
	assert.Equal(t, domain.ReadState{}, state)

	_, err = c.ReadState("nope")
	assert.ErrorIs(t, err, ErrUnknownChannel)
}

func TestCache_Malformed(t *testing.T) {
	c := newCache(t)
	assert.Error(t, c.Dispatch(nil))
	assert.Error(t, c.Dispatch(&domain.Event{}))
}

func TestCache_Messages(t *testing.T) {
	c := newCache(t)

	assert.NoError(t, c.Dispatch(message("c2", "g1", "someone", "me")))
	state, _ := c.ReadState("c2")
	assert.Equal(t, domain.ReadState{HasUnread: true, MentionCount: 1, LastMessageID: "m-c2"}, state)

	// own messages do not make a channel unread
	assert.NoError(t, c.Dispatch(message("c3", "g2", "me")))
	state, _ = c.ReadState("c3")
	assert.Equal(t, domain.ReadState{LastMessageID: "m-c3"}, state)

	everyone := message("c3", "g2", "someone")
	everyone.Message.MentionEveryone = true
	assert.NoError(t, c.Dispatch(everyone))
	state, _ = c.ReadState("c3")
	assert.Equal(t, uint32(1), state.MentionCount)

	assert.Equal(t, Counters{Messages: 3, Notifications: 2}, c.Counters())
}

func TestCache_SilencedAndViewedMessagesDoNotNotify(t *testing.T) {
	c := newCache(t)

	silenced := message("c1", "g1", "someone")
	silenced.Message.Flags = domain.FlagSuppressNotifications
	assert.NoError(t, c.Dispatch(silenced))

	assert.NoError(t, c.Dispatch(&domain.Event{Type: domain.ChannelSelect, GuildID: "g2"}))
	assert.Equal(t, "g2", c.ViewedGuildID())
	assert.NoError(t, c.Dispatch(message("c3", "g2", "someone")))

	assert.Equal(t, 0, c.Counters().Notifications)
	assert.Equal(t, 2, c.Counters().Messages)
}

func TestCache_UnknownChannelLearnt(t *testing.T) {
	c := newCache(t)

	assert.NoError(t, c.Dispatch(message("new", "g3", "someone")))
	channels, err := c.Channels("g3")
	assert.NoError(t, err)
	assert.Equal(t, []domain.Channel{{ID: "new", GuildID: "g3"}}, channels)
}

func TestCache_Acks(t *testing.T) {
	c := newCache(t)
	assert.NoError(t, c.Dispatch(message("c2", "g1", "someone", "me")))
	assert.NoError(t, c.Dispatch(message("c3", "g2", "someone", "me")))

	assert.NoError(t, c.Dispatch(&domain.Event{Type: domain.MessageAck, ChannelID: "c1", MessageID: "100"}))
	state, _ := c.ReadState("c1")
	assert.Equal(t, domain.ReadState{LastMessageID: "100"}, state)

	assert.NoError(t, c.Dispatch(&domain.Event{
		Type:     domain.BulkAck,
		Context:  "APP",
		Channels: []domain.AckItem{{ChannelID: "c2"}, {ChannelID: "c3"}},
	}))
	for _, id := range []string{"c2", "c3"} {
		state, _ := c.ReadState(id)
		assert.False(t, state.HasUnread)
		assert.Zero(t, state.MentionCount)
	}
	assert.Equal(t, 3, c.Counters().Acks)
}

func TestCache_OutdatedAckKeepsNewerMessage(t *testing.T) {
	c := newCache(t)

	next := message("c1", "g1", "someone", "me")
	next.Message.ID = "101"
	assert.NoError(t, c.Dispatch(next))

	tests := []struct {
		name      string
		messageID string
		expected  domain.ReadState
	}{
		{"older", "100", domain.ReadState{HasUnread: true, MentionCount: 2, LastMessageID: "101"}},
		{"shorter", "99", domain.ReadState{HasUnread: true, MentionCount: 2, LastMessageID: "101"}},
		{"latest", "101", domain.ReadState{LastMessageID: "101"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.NoError(t, c.Dispatch(&domain.Event{Type: domain.MessageAck, ChannelID: "c1", MessageID: tc.messageID}))
			state, err := c.ReadState("c1")
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, state)
		})
	}

	// bulk items are held to the same rule
	assert.NoError(t, c.Dispatch(message("c2", "g1", "someone")))
	assert.NoError(t, c.Dispatch(&domain.Event{
		Type:     domain.BulkAck,
		Channels: []domain.AckItem{{ChannelID: "c2", MessageID: "1"}},
	}))
	state, _ := c.ReadState("c2")
	assert.True(t, state.HasUnread)
	assert.Equal(t, 1, c.Counters().Acks)
}

func TestCache_UnreadAndReactions(t *testing.T) {
	c := newCache(t)

	assert.NoError(t, c.Dispatch(&domain.Event{Type: domain.ChannelUnreadUpdate, GuildID: "g1", ChannelID: "c2"}))
	state, _ := c.ReadState("c2")
	assert.True(t, state.HasUnread)

	assert.NoError(t, c.Dispatch(&domain.Event{Type: domain.MessageReactionAdd, GuildID: "g1", ChannelID: "c2"}))
	assert.NoError(t, c.Dispatch(&domain.Event{Type: domain.MessageReactionRemove, GuildID: "g1", ChannelID: "c2"}))
	assert.Equal(t, 2, c.Counters().Reactions)
}

func TestCache_MuteUpdate(t *testing.T) {
	c := newCache(t)

	assert.NoError(t, c.Dispatch(&domain.Event{Type: domain.GuildMuteUpdate, GuildID: "g1", Muted: true}))
	guild, _ := c.Guild("g1")
	assert.True(t, guild.Muted)

	// the returned guild is a copy
	guild.Muted = false
	guild, _ = c.Guild("g1")
	assert.True(t, guild.Muted)
}

func TestCache_StreamerMode(t *testing.T) {
	c := newCache(t)

	changes := []bool{}
	c.OnStreamerModeChange(func(streaming bool) {
		changes = append(changes, streaming)
	})

	assert.NoError(t, c.Dispatch(&domain.Event{Type: domain.StreamerModeUpdate, Enabled: true}))
	assert.NoError(t, c.Dispatch(&domain.Event{Type: domain.StreamerModeUpdate, Enabled: true}))
	assert.True(t, c.IsStreaming())
	assert.NoError(t, c.Dispatch(&domain.Event{Type: domain.StreamerModeUpdate, Enabled: false}))

	assert.Equal(t, []bool{true, false}, changes)
}

func TestCache_Search(t *testing.T) {
	c := newCache(t)

	tests := []struct {
		name     string
		search   func(string, int) []domain.SearchResult
		query    string
		limit    int
		expected []string
	}{
		{"guild prefix first", c.SearchGuilds, "go", 10, []string{"Go Time", "Gophers"}},
		{"guild contains", c.SearchGuilds, "ACE", 10, []string{"Rustaceans"}},
		{"guild limit", c.SearchGuilds, "", 1, []string{"Go Time"}},
		{"guild none", c.SearchGuilds, "zig", 10, []string{}},
		{"channels", c.SearchChannels, "gen", 0, []string{"general", "general", "generics"}},
		{"channels skip root", c.SearchChannels, "root", 0, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			names := []string{}
			for _, r := range tc.search(tc.query, tc.limit) {
				names = append(names, r.Record.Name)
			}
			assert.Equal(t, tc.expected, names)
		})
	}

	channels := c.SearchChannels("generics", 0)
	require.Len(t, channels, 1)
	assert.Equal(t, "g1", channels[0].Record.GuildID)
}
