// SPDX-License-Identifier: GPL-3.0-or-later
package reconcile

import (
	"fmt"
	"time"

	"github.com/CrawX/go-guildhush/domain"
	"github.com/CrawX/go-guildhush/log"
	"github.com/sirupsen/logrus"
)

// Membership lists every hidden guild, directly hidden or through a folder.
type Membership interface {
	SuppressedMembership() []string
}

type Suppressor interface {
	Suppressed(guildID string) bool
}

type Result struct {
	Guilds          int
	GuildsSkipped   int
	ChannelsChecked int
	ChannelsSkipped int
	Items           []domain.AckItem
	BulkAcked       bool
	AcksSent        int
	AcksFailed      int
	Errors          []string
}

// Batcher clears unread and mention state that accumulated for hidden guilds.
type Batcher struct {
	membership Membership
	suppressor Suppressor
	directory  domain.Directory
	dispatcher domain.Dispatcher

	bulk          acker
	compatibility acker

	l *logrus.Logger
}

func NewBatcher(membership Membership, suppressor Suppressor, directory domain.Directory, dispatcher domain.Dispatcher) *Batcher {
	return &Batcher{
		membership:    membership,
		suppressor:    suppressor,
		directory:     directory,
		dispatcher:    dispatcher,
		bulk:          &bulkAcker{dispatcher},
		compatibility: &compatibilityAcker{dispatcher, time.Now},
		l:             log.Logger(log.LOG_RECONCILE),
	}
}

func (b *Batcher) WithClock(now func() time.Time) *Batcher {
	b.compatibility = &compatibilityAcker{b.dispatcher, now}
	return b
}

// ReconcileHiddenUnread acknowledges every channel of a suppressed guild that has unread
// messages or mentions. Running it again without new activity acknowledges nothing.
func (b *Batcher) ReconcileHiddenUnread() *Result {
	result := &Result{Items: []domain.AckItem{}, Errors: []string{}}

	guilds := b.suppressedGuilds()
	if len(guilds) == 0 {
		b.l.Info("No hidden servers or folders, nothing to clear")
		return result
	}

	for _, guildID := range guilds {
		inspection, err := b.inspectGuild(guildID)
		if inspection.found {
			result.Guilds++
		}
		if err != nil {
			result.GuildsSkipped++
			result.Errors = append(result.Errors, err.Error())
			b.l.WithError(err).WithField("guild", guildID).Warn("Skipping guild")
			continue
		}

		result.ChannelsChecked += inspection.checked
		result.ChannelsSkipped += inspection.skipped
		result.Items = append(result.Items, inspection.items...)
		result.Errors = append(result.Errors, inspection.errors...)
	}

	b.l.WithFields(logrus.Fields{
		"guilds":   result.Guilds,
		"channels": result.ChannelsChecked,
		"items":    len(result.Items),
	}).Debug("Inspected hidden servers")

	if len(result.Items) == 0 {
		b.l.Info("Nothing to clear in hidden servers")
		return result
	}

	sent, _, err := b.bulk.ack(result.Items)
	if err == nil {
		result.BulkAcked = true
		result.AcksSent = sent
		b.l.WithField("channels", sent).Info("Acknowledged hidden channels")
		return result
	}

	result.Errors = append(result.Errors, err.Error())
	b.l.WithError(err).Warn("Bulk acknowledge failed, acknowledging channels one by one")

	sent, failed, err := b.compatibility.ack(result.Items)
	result.AcksSent = sent
	result.AcksFailed = failed
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
	}
	b.l.WithFields(logrus.Fields{"sent": sent, "failed": failed}).Info("Acknowledged hidden channels one by one")

	return result
}

func (b *Batcher) suppressedGuilds() []string {
	if b.membership == nil {
		return []string{}
	}

	guilds := []string{}
	for _, id := range b.membership.SuppressedMembership() {
		if b.suppressor != nil && !b.suppressor.Suppressed(id) {
			continue
		}
		guilds = append(guilds, id)
	}
	return guilds
}

// guildInspection is what one guild contributes to a Result. It is only merged when the whole
// guild was inspected.
type guildInspection struct {
	found   bool
	checked int
	skipped int
	items   []domain.AckItem
	errors  []string
}

// inspectGuild collects the channels of one guild that need acknowledging. Unknown guilds are
// ignored.
func (b *Batcher) inspectGuild(guildID string) (inspection *guildInspection, err error) {
	inspection = &guildInspection{items: []domain.AckItem{}, errors: []string{}}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("inspection panicked: %v", r)
		}
	}()

	if b.directory == nil {
		return inspection, fmt.Errorf("no directory")
	}

	guild, ok := b.directory.Guild(guildID)
	if !ok || guild == nil {
		b.l.WithField("guild", guildID).Debug("Guild not found")
		return inspection, nil
	}
	inspection.found = true

	channels, err := b.directory.Channels(guildID)
	if err != nil {
		return inspection, fmt.Errorf("could not list channels: %w", err)
	}

	b.l.WithFields(logrus.Fields{"guild": guild.Name, "channels": len(channels)}).Debug("Processing guild")

	for _, channel := range channels {
		if channel.ID == "" || channel.ID == guildID {
			continue
		}
		inspection.checked++

		state, err := b.directory.ReadState(channel.ID)
		if err != nil {
			inspection.skipped++
			inspection.errors = append(inspection.errors, fmt.Sprintf("could not read state of channel %s: %s", channel.ID, err))
			continue
		}

		if !pending(guild.Muted, state) {
			continue
		}

		inspection.items = append(inspection.items, domain.AckItem{
			ChannelID:     channel.ID,
			MessageID:     state.LastMessageID,
			ReadStateType: domain.ReadStateChannel,
		})
		b.l.WithFields(logrus.Fields{
			"channel":  channel.Name,
			"muted":    guild.Muted,
			"unread":   state.HasUnread,
			"mentions": state.MentionCount,
		}).Debug("Found channel to acknowledge")
	}
	return inspection, nil
}

// pending reports whether a channel needs acknowledging. Only mentions count in muted guilds.
func pending(muted bool, state domain.ReadState) bool {
	if muted {
		return state.MentionCount > 0
	}
	return state.HasUnread || state.MentionCount > 0
}
