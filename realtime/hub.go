// Package realtime pushes portfolio change events to connected dashboards
// over WebSocket. Handlers publish after successful writes; delivery is
// best-effort and slow clients are dropped rather than blocking the hub.
package realtime

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event types broadcast to connected clients.
const (
	EventBrandCreated     = "brand_created"
	EventBrandUpdated     = "brand_updated"
	EventBrandDeleted     = "brand_deleted"
	EventPriorityCreated  = "priority_created"
	EventPriorityUpdated  = "priority_updated"
	EventPriorityDeleted  = "priority_deleted"
	EventVisionaryCreated = "visionary_created"
	EventAlertCreated     = "alert_created"
	EventDecisionRecorded = "decision_recorded"
)

// Event is the envelope sent to all WebSocket clients.
type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent creates a new event with the current timestamp.
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// JSON serialises the event.
func (e Event) JSON() []byte {
	b, _ := json.Marshal(e)
	return b
}

// Hub manages all active WebSocket client connections and broadcasts events.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop. Call in a goroutine.
func (h *Hub) Run(ctx context.Context) {
	log.Println("WebSocket hub started")
	for {
		select {
		case <-ctx.Done():
			// Unblock pending add/remove sends before dropping clients.
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			log.Println("WebSocket hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Printf("WebSocket: client connected (%d total)", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				close(client.send)
				delete(h.clients, client)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Printf("WebSocket: client disconnected (%d total)", count)

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client buffer full, drop and disconnect
					go h.remove(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// add registers a client, reporting false when the hub has already stopped.
func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// remove unregisters a client. Safe to call after the hub has stopped, so
// connection teardown never blocks on shutdown.
func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish sends an event to all connected clients. Safe on a nil hub so
// handlers can publish unconditionally.
func (h *Hub) Publish(event Event) {
	if h == nil {
		return
	}
	data := event.JSON()
	select {
	case h.broadcast <- data:
	default:
		log.Printf("WebSocket: broadcast channel full, dropping event %s", event.Type)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
