// Package ws serves the real-time surface over WebSockets.
//
// Hub implements ports.EventChannel for the connections of this instance.
// Each connection is a Client with its own read and write pumps; inbound
// frames go through a Router that calls the dispatch coordinator.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/ports"
)

// Hub tracks live connections and their channel memberships.
type Hub struct {
	mu       sync.RWMutex
	clients  map[ports.ConnectionID]*Client
	channels map[string]map[ports.ConnectionID]struct{}
	logger   *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:  make(map[ports.ConnectionID]*Client),
		channels: make(map[string]map[ports.ConnectionID]struct{}),
		logger:   logger.With("component", "ws_hub"),
	}
}

func (h *Hub) AddClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

// RemoveClient forgets the connection and closes its send queue.
func (h *Hub) RemoveClient(id ports.ConnectionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(id)
}

func (h *Hub) removeLocked(id ports.ConnectionID) {
	c, ok := h.clients[id]
	if !ok {
		return
	}
	delete(h.clients, id)
	for _, members := range h.channels {
		delete(members, id)
	}
	close(c.send)
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) JoinShopChannel(conn ports.ConnectionID, slug string) {
	h.join(conn, ports.ShopChannel(slug))
}

func (h *Hub) JoinDriverChannel(conn ports.ConnectionID, driverID kernel.UUID) {
	h.join(conn, ports.DriverChannel(driverID))
}

func (h *Hub) JoinBroadcastChannel(conn ports.ConnectionID) {
	h.join(conn, ports.BroadcastChannel)
}

func (h *Hub) LeaveBroadcastChannel(conn ports.ConnectionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.channels[ports.BroadcastChannel], conn)
}

func (h *Hub) Disconnect(conn ports.ConnectionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, members := range h.channels {
		delete(members, conn)
	}
}

// Publish queues the event on every member of its channel. A member whose
// queue is full is dropped.
func (h *Hub) Publish(ctx context.Context, event ports.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message, err := json.Marshal(Frame{Event: event.Name, Data: event.Payload})
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", event.Name, err)
	}

	var slow []ports.ConnectionID

	h.mu.RLock()
	for conn := range h.channels[event.Channel] {
		if conn == event.Except {
			continue
		}
		client, ok := h.clients[conn]
		if !ok {
			continue
		}
		select {
		case client.send <- message:
		default:
			slow = append(slow, conn)
		}
	}
	h.mu.RUnlock()

	if len(slow) > 0 {
		h.mu.Lock()
		for _, conn := range slow {
			h.logger.WarnContext(ctx, "Dropping slow connection", "connection", string(conn))
			h.removeLocked(conn)
		}
		h.mu.Unlock()
	}

	return nil
}

// sendTo queues message for one connection. It reports false for an
// unknown connection or a full queue.
func (h *Hub) sendTo(conn ports.ConnectionID, message []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[conn]
	if !ok {
		return false
	}
	select {
	case client.send <- message:
		return true
	default:
		return false
	}
}

func (h *Hub) join(conn ports.ConnectionID, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[conn]; !ok {
		return
	}
	members, ok := h.channels[channel]
	if !ok {
		members = make(map[ports.ConnectionID]struct{})
		h.channels[channel] = members
	}
	members[conn] = struct{}{}
}
