package memory

import (
	"context"
	"sync"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/ports"
)

// EventChannel is a ports.EventChannel that keeps every delivered event in
// an inbox per connection instead of writing to a socket.
type EventChannel struct {
	mu      sync.Mutex
	members map[string]map[ports.ConnectionID]bool
	inboxes map[ports.ConnectionID][]ports.Event
	log     []ports.Event
}

func NewEventChannel() *EventChannel {
	return &EventChannel{
		members: make(map[string]map[ports.ConnectionID]bool),
		inboxes: make(map[ports.ConnectionID][]ports.Event),
	}
}

func (c *EventChannel) JoinShopChannel(conn ports.ConnectionID, slug string) {
	c.join(conn, ports.ShopChannel(slug))
}

func (c *EventChannel) JoinDriverChannel(conn ports.ConnectionID, driverID kernel.UUID) {
	c.join(conn, ports.DriverChannel(driverID))
}

func (c *EventChannel) JoinBroadcastChannel(conn ports.ConnectionID) {
	c.join(conn, ports.BroadcastChannel)
}

func (c *EventChannel) LeaveBroadcastChannel(conn ports.ConnectionID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.members[ports.BroadcastChannel], conn)
}

func (c *EventChannel) Publish(ctx context.Context, event ports.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.log = append(c.log, event)
	for conn := range c.members[event.Channel] {
		if conn == event.Except {
			continue
		}
		c.inboxes[conn] = append(c.inboxes[conn], event)
	}
	return nil
}

func (c *EventChannel) Disconnect(conn ports.ConnectionID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, conns := range c.members {
		delete(conns, conn)
	}
}

// Inbox returns the events delivered to conn so far.
func (c *EventChannel) Inbox(conn ports.ConnectionID) []ports.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ports.Event(nil), c.inboxes[conn]...)
}

// Published returns every published event, delivered or not.
func (c *EventChannel) Published() []ports.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ports.Event(nil), c.log...)
}

func (c *EventChannel) join(conn ports.ConnectionID, channel string) {
	if conn == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.members[channel] == nil {
		c.members[channel] = make(map[ports.ConnectionID]bool)
	}
	c.members[channel][conn] = true
}
