package ports

import (
	"context"
	"fmt"
	"strings"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
)

// BroadcastChannel is the channel every online driver listens on.
const BroadcastChannel = "drivers"

// Event names pushed to clients.
const (
	EventNewOrderSaved      = "new-order-saved"
	EventNewRequest         = "new-request"
	EventOrderAccepted      = "order-accepted"
	EventOrderTaken         = "order-taken"
	EventOrderUpdate        = "order-update"
	EventDriverAssigned     = "driver-assigned"
	EventOrderStepUpdated   = "order-step-updated"
	EventOrderCancelled     = "order-cancelled"
	EventOrderStatusUpdated = "order-status-updated"
	EventDriverMoved        = "driver-moved"
)

// ConnectionID identifies one client connection. The empty value is no
// connection.
type ConnectionID string

// ShopChannel names a shop's channel. Slugs are matched case-insensitively,
// like everywhere else a slug is read.
func ShopChannel(slug string) string {
	return fmt.Sprintf("shop:%s", strings.ToLower(strings.TrimSpace(slug)))
}

func DriverChannel(driverID kernel.UUID) string {
	return fmt.Sprintf("driver:%s", driverID.String())
}

// Event is a named payload for one channel. Except, when set, is skipped.
type Event struct {
	Channel string
	Name    string
	Payload any
	Except  ConnectionID
}

// EventChannel delivers events to the connections joined to a channel.
// Delivery is best effort and at most once per connection.
type EventChannel interface {
	JoinShopChannel(conn ConnectionID, slug string)
	JoinDriverChannel(conn ConnectionID, driverID kernel.UUID)
	JoinBroadcastChannel(conn ConnectionID)
	LeaveBroadcastChannel(conn ConnectionID)

	Publish(ctx context.Context, event Event) error

	// Disconnect drops every membership of conn.
	Disconnect(conn ConnectionID)
}
