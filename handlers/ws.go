// handlers/ws.go - Live achievement feed over WebSocket
package handlers

import (
	"sync"

	"ulenguage/models"
	"ulenguage/utils"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// AchievementEvent is pushed to every connected feed client when an
// unlock is persisted, whether it came in live or through offline sync.
type AchievementEvent struct {
	Type        string             `json:"type"`
	Achievement models.Achievement `json:"achievement"`
}

// FeedHub fans achievement events out to connected websocket clients.
// Broadcast never blocks the unlock path: a slow client is dropped.
type FeedHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan AchievementEvent
}

func NewFeedHub() *FeedHub {
	return &FeedHub{clients: make(map[*websocket.Conn]chan AchievementEvent)}
}

var feedHub = NewFeedHub()

// Broadcast queues an event for every connected client.
func (h *FeedHub) Broadcast(event AchievementEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, ch := range h.clients {
		select {
		case ch <- event:
		default:
			// Client is not keeping up, cut it loose.
			delete(h.clients, conn)
			close(ch)
		}
	}
}

func (h *FeedHub) add(conn *websocket.Conn) chan AchievementEvent {
	ch := make(chan AchievementEvent, 16)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()
	return ch
}

func (h *FeedHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if ch, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(ch)
	}
	h.mu.Unlock()
}

// AchievementFeed handles GET /ws/achievements. Clients receive a JSON
// event per unlock; incoming messages are read only to detect closes.
func AchievementFeed(conn *websocket.Conn) {
	ch := feedHub.add(conn)
	defer func() {
		feedHub.remove(conn)
		conn.Close()
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				utils.Logger.Debug("feed write failed", zap.Error(err))
				return
			}
		case <-done:
			return
		}
	}
}
