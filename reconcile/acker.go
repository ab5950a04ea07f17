// SPDX-License-Identifier: GPL-3.0-or-later
package reconcile

import (
	"fmt"
	"time"

	"github.com/CrawX/go-guildhush/domain"
)

const bulkAckContext = "APP"

type acker interface {
	ack(items []domain.AckItem) (sent int, failed int, err error)
}

// bulkAcker acknowledges every channel with a single event.
type bulkAcker struct {
	dispatcher domain.Dispatcher
}

func (b *bulkAcker) ack(items []domain.AckItem) (int, int, error) {
	err := dispatch(b.dispatcher, &domain.Event{
		Type:     domain.BulkAck,
		Context:  bulkAckContext,
		Channels: append([]domain.AckItem{}, items...),
	})
	if err != nil {
		return 0, len(items), fmt.Errorf("could not bulk acknowledge %d channels: %w", len(items), err)
	}
	return len(items), 0, nil
}

// compatibilityAcker acknowledges channel by channel. Channels without a known last message can
// not be acknowledged this way and are left out.
type compatibilityAcker struct {
	dispatcher domain.Dispatcher
	now        func() time.Time
}

func (c *compatibilityAcker) ack(items []domain.AckItem) (int, int, error) {
	sent, failed := 0, 0
	var lastErr error
	for _, item := range items {
		if item.MessageID == "" {
			continue
		}

		err := dispatch(c.dispatcher, &domain.Event{
			Type:      domain.MessageAck,
			ChannelID: item.ChannelID,
			MessageID: item.MessageID,
			Version:   c.now().UnixMilli(),
		})
		if err != nil {
			failed++
			lastErr = fmt.Errorf("could not acknowledge channel %s: %w", item.ChannelID, err)
			continue
		}
		sent++
	}
	return sent, failed, lastErr
}

// dispatch turns a panicking dispatcher into an error.
func dispatch(dispatcher domain.Dispatcher, event *domain.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dispatcher panicked: %v", r)
		}
	}()

	if dispatcher == nil {
		return fmt.Errorf("no dispatcher")
	}
	return dispatcher.Dispatch(event)
}
