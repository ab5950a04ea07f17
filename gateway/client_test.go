// SPDX-License-Identifier: GPL-3.0-or-later
package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/CrawX/go-guildhush/domain"
	"github.com/CrawX/go-guildhush/domain/mocks"
	"github.com/CrawX/go-guildhush/log"
	"github.com/golang/mock/gomock"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

// serve upgrades the connection, checks the token and writes the frames.
func serve(t *testing.T, frames []string, keepOpen bool) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %s", err)
			return
		}
		defer conn.Close()

		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}

		if keepOpen {
			// wait for the client to go away
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}

		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
	}))
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestClient_DispatchesInOrder(t *testing.T) {
	log.InitLogging("error")
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dispatcher := mocks.NewMockDispatcher(ctrl)
	gomock.InOrder(
		dispatcher.EXPECT().
			Dispatch(gomock.Eq(&domain.Event{Type: domain.ChannelSelect, GuildID: "g1"})).
			Return(nil),
		dispatcher.EXPECT().
			Dispatch(gomock.Eq(&domain.Event{
				Type:    domain.MessageCreate,
				Message: &domain.Message{ID: "m1", ChannelID: "c1", GuildID: "g1", Author: domain.User{ID: "u"}, Flags: 4096},
			})).
			Return(nil),
		dispatcher.EXPECT().
			Dispatch(gomock.Eq(&domain.Event{Type: domain.MessageReactionAdd, GuildID: "g1"})).
			Return(assert.AnError),
	)

	server := serve(t, []string{
		`{"type":"CHANNEL_SELECT","guild_id":"g1"}`,
		`not json`,
		`{"type":"MESSAGE_CREATE","message":{"id":"m1","channel_id":"c1","guild_id":"g1","author":{"id":"u"},"flags":4096}}`,
		`{"type":"MESSAGE_REACTION_ADD","guild_id":"g1"}`,
	}, false)
	defer server.Close()

	err := NewClient(wsURL(server), "token", dispatcher).Run(context.Background())
	assert.NoError(t, err)
}

func TestClient_Unauthorized(t *testing.T) {
	log.InitLogging("error")
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := serve(t, nil, false)
	defer server.Close()

	err := NewClient(wsURL(server), "wrong", mocks.NewMockDispatcher(ctrl)).Run(context.Background())
	assert.Error(t, err)
}

func TestClient_StopsOnCancel(t *testing.T) {
	log.InitLogging("error")
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dispatched := make(chan struct{})
	dispatcher := mocks.NewMockDispatcher(ctrl)
	dispatcher.EXPECT().
		Dispatch(gomock.Any()).
		DoAndReturn(func(*domain.Event) error {
			close(dispatched)
			return nil
		})

	server := serve(t, []string{`{"type":"STREAMER_MODE_UPDATE","enabled":true}`}, true)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		result <- NewClient(wsURL(server), "token", dispatcher).Run(ctx)
	}()

	select {
	case <-dispatched:
	case <-time.After(5 * time.Second):
		require.FailNow(t, "no event dispatched")
	}
	cancel()

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "client did not stop")
	}
}

func TestClient_IdleConnectionKeptAlive(t *testing.T) {
	log.InitLogging("error")
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// never writes a frame, answers pings while reading
	server := serve(t, nil, true)
	defer server.Close()

	wait := 100 * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), 6*wait)
	defer cancel()

	start := time.Now()
	err := NewClient(wsURL(server), "token", mocks.NewMockDispatcher(ctrl)).WithKeepalive(wait).Run(ctx)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 6*wait)
}

func TestClient_UnresponsivePeerTimesOut(t *testing.T) {
	log.InitLogging("error")
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stop := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		// never reads, so pings are never answered
		<-stop
	}))
	defer server.Close()
	defer close(stop)

	wait := 100 * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := NewClient(wsURL(server), "token", mocks.NewMockDispatcher(ctrl)).WithKeepalive(wait).Run(ctx)
	assert.ErrorContains(t, err, "could not read from gateway")
	assert.NoError(t, ctx.Err())
}
