package websocket

import (
	"sync"

	"github.com/google/uuid"
)

// Hub tracks the connected clients. Feed delivery does not flow through the
// hub: every client owns a forum engine with its own live subscriptions, so
// the hub only keeps the registry for presence queries and shutdown.
type Hub struct {
	// Registered clients
	clients map[uuid.UUID]*Client

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for thread-safe operations
	mu sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub. Clients are keyed by session id, so one user may hold
// several connections, each with its own engine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.session] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.session]; ok {
				delete(h.clients, client.session)
				close(client.send)
			}
			h.mu.Unlock()
		}
	}
}

// OnlineUsers returns the ids of the authenticated connected users
func (h *Hub) OnlineUsers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	userIDs := make([]uuid.UUID, 0, len(h.clients))
	for _, client := range h.clients {
		if client.userID != uuid.Nil {
			userIDs = append(userIDs, client.userID)
		}
	}
	return userIDs
}

// IsUserOnline checks if a user has an active connection
func (h *Hub) IsUserOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.userID == userID {
			return true
		}
	}
	return false
}
