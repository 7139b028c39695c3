package game

import (
	"sync"

	"github.com/gorilla/websocket"
)

// client wraps a connection so that writes from several goroutines do not
// interleave.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// hub tracks the sockets attached to each game.
type hub struct {
	mu    sync.RWMutex
	games map[string]map[*client]struct{}
}

func newHub() *hub {
	return &hub{games: make(map[string]map[*client]struct{})}
}

func (h *hub) join(gameKey string, conn *websocket.Conn) *client {
	c := &client{conn: conn}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.games[gameKey]
	if !ok {
		clients = make(map[*client]struct{})
		h.games[gameKey] = clients
	}
	clients[c] = struct{}{}

	return c
}

func (h *hub) leave(gameKey string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.games[gameKey]
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.games, gameKey)
	}
}

func (h *hub) broadcast(gameKey string, v any) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.games[gameKey]))
	for c := range h.games[gameKey] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(v); err != nil {
			// the reader goroutine of a broken socket removes it
			_ = c.conn.Close()
		}
	}
}
