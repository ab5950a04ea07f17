// SPDX-License-Identifier: GPL-3.0-or-later
package visibility

import (
	"github.com/CrawX/go-guildhush/domain"
	"github.com/sirupsen/logrus"
)

// Hidden is the part of the hidden store the guild list is styled from.
type Hidden interface {
	Servers() []string
	Folders() []string
}

// FolderView is a folder that stays visible although some of its guilds are hidden.
type FolderView struct {
	FolderID      string
	VisibleGuilds int
}

// Snapshot describes what the guild list hides. Nothing is hidden while it is not enabled.
type Snapshot struct {
	Enabled        bool
	HiddenGuilds   []string
	HiddenFolders  []string
	PartialFolders []FolderView
}

// Derive computes the guild list state for the hidden items and the current folders.
func Derive(hidden Hidden, folders []domain.Folder, enabled bool) Snapshot {
	snapshot := Snapshot{
		Enabled:        enabled,
		HiddenGuilds:   []string{},
		HiddenFolders:  []string{},
		PartialFolders: []FolderView{},
	}
	if !enabled || hidden == nil {
		return snapshot
	}

	snapshot.HiddenGuilds = hidden.Servers()
	snapshot.HiddenFolders = hidden.Folders()

	servers := map[string]bool{}
	for _, id := range snapshot.HiddenGuilds {
		servers[id] = true
	}
	hiddenFolders := map[string]bool{}
	for _, id := range snapshot.HiddenFolders {
		hiddenFolders[id] = true
	}

	for _, folder := range folders {
		if folder.ID == "" || hiddenFolders[folder.ID] {
			continue
		}

		hiddenMembers := 0
		for _, guildID := range folder.GuildIDs {
			if servers[guildID] {
				hiddenMembers++
			}
		}
		visible := len(folder.GuildIDs) - hiddenMembers
		if hiddenMembers > 0 && visible > 0 {
			snapshot.PartialFolders = append(snapshot.PartialFolders, FolderView{
				FolderID:      folder.ID,
				VisibleGuilds: visible,
			})
		}
	}

	return snapshot
}

// Sink receives every newly derived snapshot.
type Sink interface {
	Apply(snapshot Snapshot)
}

type NoopSink struct{}

func (NoopSink) Apply(Snapshot) {}

// LogSink reports snapshots to a logger.
type LogSink struct {
	L *logrus.Logger
}

func (s LogSink) Apply(snapshot Snapshot) {
	s.L.WithFields(logrus.Fields{
		"enabled": snapshot.Enabled,
		"guilds":  len(snapshot.HiddenGuilds),
		"folders": len(snapshot.HiddenFolders),
		"partial": len(snapshot.PartialFolders),
	}).Info("Guild list updated")
}
