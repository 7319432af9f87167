package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Hub is the change-feed fan-out point: one registered client per
// connected user, each holding a buffered send queue. Slow consumers
// are dropped rather than allowed to block the hub.
type Hub struct {
	register   chan *Client
	unregister chan *Client

	mu      sync.RWMutex
	clients map[string]*Client

	log *zap.Logger
}

// NewHub creates a hub. Call Run before subscribing clients.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]*Client),
		log:        log,
	}
}

// Run drives the hub's register/unregister loop until the context is
// cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// Subscription is the handle for one user's feed. Closing it tears the
// subscription down; closing twice is safe.
type Subscription struct {
	hub    *Hub
	client *Client
	once   sync.Once
}

// Close releases the subscription.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unregister <- s.client
	})
}

// Subscribe acquires a feed subscription for the client's user. A
// second connection for the same user replaces the first.
func (h *Hub) Subscribe(client *Client) *Subscription {
	h.register <- client
	return &Subscription{hub: h, client: client}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.clients[client.UserID]; ok {
		close(existing.Send)
	}
	h.clients[client.UserID] = client
	h.log.Info("feed subscribed", zap.String("user_id", client.UserID))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// A replaced connection's teardown must not evict its successor.
	if current, ok := h.clients[client.UserID]; ok && current == client {
		delete(h.clients, client.UserID)
		close(client.Send)
		h.log.Info("feed released", zap.String("user_id", client.UserID))
	}
}

// NotifyUser pushes one event to a user's feed, if they are connected
// here. Never blocks: a full queue drops the event.
func (h *Hub) NotifyUser(userID, event string, payload any) {
	data, err := json.Marshal(Message{
		Type:      event,
		Payload:   payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		h.log.Error("marshal feed event", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[userID]
	if !ok {
		return
	}
	select {
	case client.Send <- data:
	default:
		h.log.Warn("feed queue full, dropping event",
			zap.String("user_id", userID), zap.String("event", event))
	}
}

// IsOnline reports whether a user has an open feed on this instance.
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// OnlineCount returns the number of connected users.
func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
