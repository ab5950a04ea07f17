// SPDX-License-Identifier: GPL-3.0-or-later
package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/CrawX/go-guildhush/domain"
	"github.com/CrawX/go-guildhush/log"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownGuild   = errors.New("unknown guild")
	ErrUnknownChannel = errors.New("unknown channel")
)

// Counters tracks what reached the user: notifications are messages that were neither silenced
// nor sent to the guild being viewed.
type Counters struct {
	Messages      int
	Notifications int
	Reactions     int
	Acks          int
}

// Cache is the client state built from the event stream. It is the dispatcher events end up in
// and the directory the suppression logic reads.
type Cache struct {
	mu sync.RWMutex

	userID    string
	viewed    string
	streaming bool

	guilds     map[string]*domain.Guild
	guildOrder []string
	folders    []domain.Folder
	channels   map[string]domain.Channel
	byGuild    map[string][]string
	readStates map[string]*domain.ReadState
	counters   Counters

	listenersMu     sync.Mutex
	streamListeners []func(streaming bool)

	l *logrus.Logger
}

func NewCache() *Cache {
	c := &Cache{
		l: log.Logger(log.LOG_STATE),
	}
	c.reset()
	return c
}

func (c *Cache) reset() {
	c.guilds = map[string]*domain.Guild{}
	c.guildOrder = []string{}
	c.folders = []domain.Folder{}
	c.channels = map[string]domain.Channel{}
	c.byGuild = map[string][]string{}
	c.readStates = map[string]*domain.ReadState{}
}

// OnStreamerModeChange registers a listener for streamer mode updates.
func (c *Cache) OnStreamerModeChange(listener func(streaming bool)) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	c.streamListeners = append(c.streamListeners, listener)
}

func (c *Cache) Dispatch(event *domain.Event) error {
	if !event.WellFormed() {
		return fmt.Errorf("could not apply event: malformed")
	}

	streamingChanged := false

	c.mu.Lock()
	switch event.Type {
	case domain.Ready:
		c.applyReady(event.Ready)
	case domain.ChannelSelect:
		c.viewed = event.GuildID
	case domain.StreamerModeUpdate:
		streamingChanged = c.streaming != event.Enabled
		c.streaming = event.Enabled
	case domain.GuildMuteUpdate:
		if guild, ok := c.guilds[event.GuildID]; ok {
			guild.Muted = event.Muted
		}
	case domain.MessageCreate:
		c.applyMessage(event.Message)
	case domain.MessageAck:
		c.ack(event.ChannelID, event.MessageID)
	case domain.BulkAck:
		for _, item := range event.Channels {
			c.ack(item.ChannelID, item.MessageID)
		}
	case domain.ChannelUnreadUpdate:
		c.readState(event.ChannelID).HasUnread = true
	case domain.MessageReactionAdd, domain.MessageReactionRemove:
		c.counters.Reactions++
	default:
		c.l.WithField("type", event.Type).Debug("Ignoring event")
	}
	streaming := c.streaming
	c.mu.Unlock()

	if streamingChanged {
		c.l.WithField("streaming", streaming).Info("Streamer mode changed")
		c.listenersMu.Lock()
		listeners := append([]func(bool){}, c.streamListeners...)
		c.listenersMu.Unlock()
		for _, listener := range listeners {
			listener(streaming)
		}
	}

	return nil
}

func (c *Cache) applyReady(ready *domain.ReadyState) {
	c.reset()
	c.viewed = ""
	if ready == nil {
		return
	}

	c.userID = ready.User.ID
	for _, g := range ready.Guilds {
		if g.ID == "" {
			continue
		}
		guild := g
		if _, exists := c.guilds[g.ID]; !exists {
			c.guildOrder = append(c.guildOrder, g.ID)
		}
		c.guilds[g.ID] = &guild
	}
	for _, f := range ready.Folders {
		c.folders = append(c.folders, domain.Folder{
			ID:       f.ID,
			Name:     f.Name,
			GuildIDs: append([]string{}, f.GuildIDs...),
		})
	}
	for _, channel := range ready.Channels {
		c.addChannel(channel)
	}
	for channelID, state := range ready.ReadStates {
		s := state
		c.readStates[channelID] = &s
	}

	c.l.WithFields(logrus.Fields{
		"guilds":   len(c.guilds),
		"folders":  len(c.folders),
		"channels": len(c.channels),
	}).Info("Session ready")
}

func (c *Cache) addChannel(channel domain.Channel) {
	if channel.ID == "" {
		return
	}
	if _, exists := c.channels[channel.ID]; !exists {
		c.byGuild[channel.GuildID] = append(c.byGuild[channel.GuildID], channel.ID)
	}
	c.channels[channel.ID] = channel
}

func (c *Cache) applyMessage(message *domain.Message) {
	if message == nil || message.ChannelID == "" {
		return
	}
	c.counters.Messages++

	if _, known := c.channels[message.ChannelID]; !known {
		c.addChannel(domain.Channel{ID: message.ChannelID, GuildID: message.GuildID})
	}

	state := c.readState(message.ChannelID)
	state.LastMessageID = message.ID
	if message.Author.ID == c.userID && c.userID != "" {
		return
	}

	state.HasUnread = true
	if message.MentionEveryone || message.MentionsUser(c.userID) {
		state.MentionCount++
	}

	if message.Flags&domain.FlagSuppressNotifications == 0 && (message.GuildID == "" || message.GuildID != c.viewed) {
		c.counters.Notifications++
	}
}

// ack marks a channel read up to messageID. An ack older than the last message of the channel
// leaves the newer messages unread, an ack without a message id reads everything.
func (c *Cache) ack(channelID, messageID string) {
	if channelID == "" {
		return
	}
	state := c.readState(channelID)
	if messageID != "" && state.LastMessageID != "" && idBefore(messageID, state.LastMessageID) {
		c.l.WithFields(logrus.Fields{"channel": channelID, "message": messageID}).Debug("Ignoring outdated ack")
		return
	}
	state.HasUnread = false
	state.MentionCount = 0
	c.counters.Acks++
}

// idBefore compares numeric ids of any length, shorter ids are older.
func idBefore(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func (c *Cache) readState(channelID string) *domain.ReadState {
	state, ok := c.readStates[channelID]
	if !ok {
		state = &domain.ReadState{}
		c.readStates[channelID] = state
	}
	return state
}

func (c *Cache) Counters() Counters {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counters
}

func (c *Cache) CurrentUserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *Cache) ViewedGuildID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewed
}

func (c *Cache) IsStreaming() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.streaming
}

func (c *Cache) Guild(guildID string) (*domain.Guild, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	guild, ok := c.guilds[guildID]
	if !ok {
		return nil, false
	}
	g := *guild
	return &g, true
}

func (c *Cache) Folders() []domain.Folder {
	c.mu.RLock()
	defer c.mu.RUnlock()
	folders := make([]domain.Folder, 0, len(c.folders))
	for _, f := range c.folders {
		f.GuildIDs = append([]string{}, f.GuildIDs...)
		folders = append(folders, f)
	}
	return folders
}

func (c *Cache) FolderMembers(folderID string) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.folders {
		if f.ID == folderID {
			return append([]string{}, f.GuildIDs...), true
		}
	}
	return nil, false
}

func (c *Cache) Channels(guildID string) ([]domain.Channel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.guilds[guildID]; !ok {
		return nil, fmt.Errorf("could not list channels of %s: %w", guildID, ErrUnknownGuild)
	}
	channels := []domain.Channel{}
	for _, id := range c.byGuild[guildID] {
		channels = append(channels, c.channels[id])
	}
	return channels, nil
}

func (c *Cache) ReadState(channelID string) (domain.ReadState, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.channels[channelID]; !ok {
		return domain.ReadState{}, fmt.Errorf("could not read state of %s: %w", channelID, ErrUnknownChannel)
	}
	state, ok := c.readStates[channelID]
	if !ok {
		return domain.ReadState{}, nil
	}
	return *state, nil
}

var _ domain.Directory = (*Cache)(nil)
var _ domain.Dispatcher = (*Cache)(nil)
