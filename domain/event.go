// SPDX-License-Identifier: GPL-3.0-or-later
package domain

//go:generate mockgen -destination=mocks/dispatch.go -package=mocks . Dispatcher

type EventType string

const (
	MessageCreate         = EventType("MESSAGE_CREATE")
	ChannelUnreadUpdate   = EventType("CHANNEL_UNREAD_UPDATE")
	MessageReactionAdd    = EventType("MESSAGE_REACTION_ADD")
	MessageReactionRemove = EventType("MESSAGE_REACTION_REMOVE")
	MessageAck            = EventType("MESSAGE_ACK")
	BulkAck               = EventType("BULK_ACK")
	Ready                 = EventType("READY")
	ChannelSelect         = EventType("CHANNEL_SELECT")
	StreamerModeUpdate    = EventType("STREAMER_MODE_UPDATE")
	GuildMuteUpdate       = EventType("GUILD_MUTE_UPDATE")
)

type MessageFlags uint32

// FlagSuppressNotifications marks a message as silent: no sound, no desktop notification.
const FlagSuppressNotifications = MessageFlags(1 << 12)

// ReadStateChannel is the read state type of a regular channel inside an ack item.
const ReadStateChannel = 0

type User struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
}

type Message struct {
	ID              string       `json:"id"`
	ChannelID       string       `json:"channel_id"`
	GuildID         string       `json:"guild_id,omitempty"`
	Author          User         `json:"author"`
	Content         string       `json:"content,omitempty"`
	Mentions        []User       `json:"mentions,omitempty"`
	MentionEveryone bool         `json:"mention_everyone,omitempty"`
	Flags           MessageFlags `json:"flags,omitempty"`
}

// MentionsUser reports whether userID is among the explicit mentions of the message.
func (m *Message) MentionsUser(userID string) bool {
	if userID == "" {
		return false
	}
	for _, u := range m.Mentions {
		if u.ID == userID {
			return true
		}
	}
	return false
}

type AckItem struct {
	ChannelID     string `json:"channel_id"`
	MessageID     string `json:"message_id,omitempty"`
	ReadStateType int    `json:"read_state_type"`
}

// ReadyState is the initial snapshot a client receives when its session starts.
type ReadyState struct {
	User       User                 `json:"user"`
	Guilds     []Guild              `json:"guilds"`
	Folders    []Folder             `json:"folders,omitempty"`
	Channels   []Channel            `json:"channels,omitempty"`
	ReadStates map[string]ReadState `json:"read_states,omitempty"`
}

// Event is a single action flowing through the dispatch entry point.
type Event struct {
	Type      EventType   `json:"type"`
	GuildID   string      `json:"guild_id,omitempty"`
	ChannelID string      `json:"channel_id,omitempty"`
	MessageID string      `json:"message_id,omitempty"`
	UserID    string      `json:"user_id,omitempty"`
	Emoji     string      `json:"emoji,omitempty"`
	Message   *Message    `json:"message,omitempty"`
	Channels  []AckItem   `json:"channels,omitempty"`
	Context   string      `json:"context,omitempty"`
	Version   int64       `json:"version,omitempty"`
	Explicit  bool        `json:"is_explicit,omitempty"`
	Enabled   bool        `json:"enabled,omitempty"`
	Muted     bool        `json:"muted,omitempty"`
	Ready     *ReadyState `json:"ready,omitempty"`
}

// WellFormed reports whether the event can be classified at all.
func (e *Event) WellFormed() bool {
	return e != nil && e.Type != ""
}

// Clone returns a deep copy of the event. Ready snapshots are shared, they are never modified
// after dispatch.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}

	c := *e
	if e.Message != nil {
		m := *e.Message
		if e.Message.Mentions != nil {
			m.Mentions = append([]User(nil), e.Message.Mentions...)
		}
		c.Message = &m
	}
	if e.Channels != nil {
		c.Channels = append([]AckItem(nil), e.Channels...)
	}
	return &c
}

// Dispatcher is the dispatch entry point of the client. A nil error means the event was
// handled, which includes being deliberately dropped.
type Dispatcher interface {
	Dispatch(event *Event) error
}

type DispatcherFunc func(event *Event) error

func (f DispatcherFunc) Dispatch(event *Event) error {
	return f(event)
}
