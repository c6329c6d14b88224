package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// attach registers a socketless client whose queue the test reads.
func attach(hub *Hub, id string, queue int) *Client {
	c := &Client{
		id:     ports.ConnectionID(id),
		hub:    hub,
		send:   make(chan []byte, queue),
		logger: discardLogger(),
	}
	hub.AddClient(c)
	return c
}

func drain(t *testing.T, c *Client) []Frame {
	t.Helper()

	var frames []Frame
	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return frames
			}
			var f Frame
			require.NoError(t, json.Unmarshal(message, &f))
			frames = append(frames, f)
		default:
			return frames
		}
	}
}

func TestHub_PublishReachesChannelMembersOnly(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(discardLogger())

	shopConn := attach(hub, "shop", 8)
	otherShop := attach(hub, "other", 8)
	hub.JoinShopChannel("shop", "tacos")
	hub.JoinShopChannel("other", "pizza")

	require.NoError(t, hub.Publish(ctx, ports.Event{
		Channel: ports.ShopChannel("tacos"),
		Name:    ports.EventNewOrderSaved,
		Payload: map[string]int{"dailyId": 1},
	}))

	frames := drain(t, shopConn)
	require.Len(t, frames, 1)
	assert.Equal(t, ports.EventNewOrderSaved, frames[0].Event)
	assert.Empty(t, drain(t, otherShop))
}

func TestHub_PublishSkipsExcept(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(discardLogger())

	a := attach(hub, "a", 8)
	b := attach(hub, "b", 8)
	hub.JoinBroadcastChannel("a")
	hub.JoinBroadcastChannel("b")

	require.NoError(t, hub.Publish(ctx, ports.Event{
		Channel: ports.BroadcastChannel,
		Name:    ports.EventOrderTaken,
		Except:  "a",
	}))

	assert.Empty(t, drain(t, a))
	assert.Len(t, drain(t, b), 1)
}

func TestHub_LeaveAndDisconnect(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(discardLogger())
	driverID := kernel.NewUUID()

	c := attach(hub, "driver", 8)
	hub.JoinBroadcastChannel("driver")
	hub.JoinDriverChannel("driver", driverID)

	hub.LeaveBroadcastChannel("driver")
	require.NoError(t, hub.Publish(ctx, ports.Event{Channel: ports.BroadcastChannel, Name: ports.EventNewRequest}))
	require.NoError(t, hub.Publish(ctx, ports.Event{Channel: ports.DriverChannel(driverID), Name: ports.EventNewRequest}))
	assert.Len(t, drain(t, c), 1)

	hub.Disconnect("driver")
	require.NoError(t, hub.Publish(ctx, ports.Event{Channel: ports.DriverChannel(driverID), Name: ports.EventNewRequest}))
	assert.Empty(t, drain(t, c))
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHub_JoinIgnoresUnknownConnection(t *testing.T) {
	hub := NewHub(discardLogger())
	hub.JoinShopChannel("ghost", "tacos")

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	assert.Empty(t, hub.channels)
}

func TestHub_DropsSlowConnection(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(discardLogger())

	attach(hub, "slow", 1)
	hub.JoinBroadcastChannel("slow")

	require.NoError(t, hub.Publish(ctx, ports.Event{Channel: ports.BroadcastChannel, Name: ports.EventNewRequest}))
	require.NoError(t, hub.Publish(ctx, ports.Event{Channel: ports.BroadcastChannel, Name: ports.EventNewRequest}))

	assert.Equal(t, 0, hub.ClientCount())
	assert.False(t, hub.sendTo("slow", []byte("{}")))
}
