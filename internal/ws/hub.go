package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans domain events out to connected dashboard clients. The browser
// side plays the new-order chime when it receives a new_order event; the
// server only guarantees best-effort delivery (a full send queue drops the
// message rather than blocking a mutation).
type Hub struct {
	mu        sync.RWMutex
	clients   map[*websocket.Conn]bool
	broadcast chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, 256),
	}
}

// Run pumps broadcast messages to every client. Call in a goroutine.
func (h *Hub) Run() {
	for msg := range h.broadcast {
		h.mu.RLock()
		conns := make([]*websocket.Conn, 0, len(h.clients))
		for c := range h.clients {
			conns = append(conns, c)
		}
		h.mu.RUnlock()
		for _, c := range conns {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.remove(c)
			}
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected dashboards.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Notify implements services.Notifier: events are JSON envelopes
// {"event": ..., "data": ...}.
func (h *Hub) Notify(event string, payload any) {
	msg, err := json.Marshal(map[string]any{"event": event, "data": payload})
	if err != nil {
		log.Printf("ws: marshal %s event: %v", event, err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		// queue full: drop rather than block the caller
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// same-origin dashboard only; the session cookie is the real gate
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades GET /ws connections and keeps them registered until the
// peer goes away. Clients only listen; inbound messages are drained and
// discarded.
func (h *Hub) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade: %v", err)
		return
	}
	h.add(conn)
	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
