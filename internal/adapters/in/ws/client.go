package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/ports"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 64 * 1024
	sendQueueSize  = 256
)

// Client is one socket connection. The read pump owns driverID.
type Client struct {
	id     ports.ConnectionID
	conn   *websocket.Conn
	hub    *Hub
	send   chan []byte
	logger *slog.Logger

	driverID *kernel.UUID
}

func newClient(conn *websocket.Conn, hub *Hub, logger *slog.Logger) *Client {
	id := ports.ConnectionID(kernel.NewUUID().String())
	return &Client{
		id:     id,
		conn:   conn,
		hub:    hub,
		send:   make(chan []byte, sendQueueSize),
		logger: logger.With("connection", string(id)),
	}
}

func (c *Client) ID() ports.ConnectionID {
	return c.id
}

// DriverID is the driver bound by driver-login or driver-online, if any.
func (c *Client) DriverID() *kernel.UUID {
	return c.driverID
}

func (c *Client) bindDriver(id kernel.UUID) {
	c.driverID = &id
}

// reply queues a frame for this connection only. It reports false when the
// queue is full or closed.
func (c *Client) reply(frame Frame) bool {
	message, err := json.Marshal(frame)
	if err != nil {
		c.logger.Error("Failed to marshal reply", "event", frame.Event, "error", err)
		return false
	}

	return c.hub.sendTo(c.id, message)
}

// readPump hands every inbound frame to the router in arrival order and
// unregisters the connection when the socket closes.
func (c *Client) readPump(ctx context.Context, router *Router) {
	defer func() {
		router.Closed(ctx, c)
		c.hub.RemoveClient(c.id)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.WarnContext(ctx, "Socket closed unexpectedly", "error", err)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			c.reply(Frame{
				Event: EventError,
				Data:  ErrorPayload{Message: "malformed frame", Code: CodeValidation},
			})
			continue
		}

		router.Handle(ctx, c, frame)
	}
}

// writePump drains the send queue and keeps the connection alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					c.logger.Warn("Write failed", "error", err)
				}
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
