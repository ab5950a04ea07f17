// SPDX-License-Identifier: GPL-3.0-or-later
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/CrawX/go-guildhush/domain"
	"github.com/CrawX/go-guildhush/log"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a control message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer.
	pongWait = 60 * time.Second

	// Send pings to the peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4 * 1024 * 1024
)

// Client reads events from a websocket and dispatches them in arrival order.
type Client struct {
	url        string
	token      string
	dispatcher domain.Dispatcher
	dialer     *websocket.Dialer

	pongWait   time.Duration
	pingPeriod time.Duration

	l *logrus.Logger
}

func NewClient(url, token string, dispatcher domain.Dispatcher) *Client {
	return &Client{
		url:        url,
		token:      token,
		dispatcher: dispatcher,
		dialer:     websocket.DefaultDialer,
		pongWait:   pongWait,
		pingPeriod: pingPeriod,
		l:          log.Logger(log.LOG_GATEWAY),
	}
}

// WithKeepalive changes how long the connection may stay silent. Pings are sent at nine tenths
// of it. A wait that is not positive is ignored.
func (c *Client) WithKeepalive(wait time.Duration) *Client {
	if wait <= 0 {
		return c
	}
	c.pongWait = wait
	c.pingPeriod = (wait * 9) / 10
	return c
}

// Run connects and dispatches events until the context is done or the connection fails. A
// cancelled context is not an error.
func (c *Client) Run(ctx context.Context) error {
	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", c.token)
	}

	conn, _, err := c.dialer.DialContext(ctx, c.url, header)
	if err != nil {
		return fmt.Errorf("could not connect to gateway: %w", err)
	}
	c.l.WithField("url", c.url).Info("Connected")

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(c.pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
				if err != nil {
					c.l.WithError(err).Debug("Could not ping gateway")
				}
			case <-ctx.Done():
				conn.WriteControl(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait),
				)
				conn.Close()
				return
			case <-done:
				conn.Close()
				return
			}
		}
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(c.pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(c.pongWait))
		return nil
	})
	conn.SetPingHandler(func(data string) error {
		conn.SetReadDeadline(time.Now().Add(c.pongWait))
		err := conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeWait))
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		return err
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				c.l.Info("Disconnected")
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.l.Info("Gateway closed the connection")
				return nil
			}
			return fmt.Errorf("could not read from gateway: %w", err)
		}
		conn.SetReadDeadline(time.Now().Add(c.pongWait))

		c.handle(data)
	}
}

func (c *Client) handle(data []byte) {
	event := &domain.Event{}
	err := json.Unmarshal(data, event)
	if err != nil {
		c.l.WithError(err).WithField("size", len(data)).Warn("Skipping undecodable frame")
		return
	}

	err = c.dispatcher.Dispatch(event)
	if err != nil {
		c.l.WithError(err).WithField("type", event.Type).Warn("Could not dispatch event")
	}
}
