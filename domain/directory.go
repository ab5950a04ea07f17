// SPDX-License-Identifier: GPL-3.0-or-later
package domain

//go:generate mockgen -destination=mocks/directory.go -package=mocks . Directory,FolderResolver,HiddenPersistence

type Guild struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Muted bool   `json:"muted,omitempty"`
}

type Channel struct {
	ID      string `json:"id"`
	GuildID string `json:"guild_id"`
	Name    string `json:"name"`
}

// Folder is a user defined collection of guilds as shown in the guild list.
type Folder struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	GuildIDs []string `json:"guild_ids"`
}

type ReadState struct {
	HasUnread     bool   `json:"has_unread"`
	MentionCount  uint32 `json:"mention_count"`
	LastMessageID string `json:"last_message_id,omitempty"`
}

type FolderResolver interface {
	// FolderMembers returns the guilds of a folder in list order. ok is false for unknown folders.
	FolderMembers(folderID string) (guildIDs []string, ok bool)
}

type GuildDirectory interface {
	Guild(guildID string) (guild *Guild, ok bool)
	Folders() []Folder
	Channels(guildID string) ([]Channel, error)
}

type ReadStates interface {
	ReadState(channelID string) (ReadState, error)
}

type Session interface {
	// CurrentUserID is empty before the session is ready.
	CurrentUserID() string
	// ViewedGuildID is empty while no guild is selected.
	ViewedGuildID() string
	IsStreaming() bool
}

// Directory is the read-only view of the client the suppression logic consults.
type Directory interface {
	FolderResolver
	GuildDirectory
	ReadStates
	Session
}
