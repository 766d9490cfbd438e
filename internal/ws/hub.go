// README: WebSocket hub; pushes ride state and driver markers to UI shells.
package ws

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// client owns one connection. The gorilla package allows at most one
// concurrent writer per connection, so every write goes through wmu.
type client struct {
	conn *websocket.Conn
	wmu  sync.Mutex
}

func (c *client) writeJSON(msg any) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.conn.WriteJSON(msg)
}

// Hub stores all active WebSocket connections keyed by user ID.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	log     *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*client),
		log:     log,
	}
}

// Add registers a new connection, replacing (and closing) any previous one
// for the same user.
func (h *Hub) Add(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.clients[id]; ok {
		_ = old.conn.Close()
	}
	h.clients[id] = &client{conn: conn}
	h.log.Info("ws_registered", "id", id)
}

// Remove deletes and closes a connection.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		_ = c.conn.Close()
		delete(h.clients, id)
		h.log.Info("ws_removed", "id", id)
	}
}

// Send transmits a JSON message to a connected user. Not connected is not
// an error.
func (h *Hub) Send(id string, msg any) error {
	h.mu.RLock()
	c, ok := h.clients[id]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	return c.writeJSON(msg)
}

// Broadcast transmits a JSON message to every connected user.
func (h *Hub) Broadcast(msg any) {
	h.mu.RLock()
	clients := make(map[string]*client, len(h.clients))
	for id, c := range h.clients {
		clients[id] = c
	}
	h.mu.RUnlock()

	for id, c := range clients {
		if err := c.writeJSON(msg); err != nil {
			h.log.Warn("ws_send_failed", "id", id, "err", err)
		}
	}
}
