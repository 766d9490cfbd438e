// README: WebSocket endpoint; streams ride state and driver markers to a UI shell.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"glazovcab/internal/http/middleware"
	"glazovcab/internal/modules/ride"
	"glazovcab/internal/types"
	"glazovcab/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The UI shell is local; cross-origin checks add nothing here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct {
	sessions *Sessions
	hub      *ws.Hub
	log      *slog.Logger
}

func NewWSHandler(sessions *Sessions, hub *ws.Hub, log *slog.Logger) *WSHandler {
	return &WSHandler{sessions: sessions, hub: hub, log: log}
}

// Connect upgrades the request and pushes every lifecycle change until the
// peer disconnects. The current state goes out immediately so a reconnecting
// shell never renders stale.
func (h *WSHandler) Connect(c *gin.Context) {
	userID := middleware.CallerID(c)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "user_id", userID, "err", err)
		return
	}

	h.hub.Add(userID, conn)
	us := h.sessions.For(types.ID(userID))

	// Callbacks run with the session lock held, so they only enqueue; a single
	// pump goroutine writes, preserving the order of state changes.
	pending := make(chan ride.State, 64)
	unsubscribe := us.Ride.Subscribe(func(st ride.State) {
		select {
		case pending <- st:
		default:
			// Peer too slow to drain 64 states; it will resync on reconnect.
		}
	})
	defer unsubscribe()
	defer h.hub.Remove(userID)

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case st := <-pending:
				if err := h.hub.Send(userID, stateJSON(st)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	if err := h.hub.Send(userID, stateJSON(us.Ride.State())); err != nil {
		return
	}

	// Inbound frames are ignored; the socket exists to push state out.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
