// Package redis fans channel events out to every instance of the service
// through Redis pub/sub.
//
// Each instance delivers an event to its own connections first and then
// publishes it under "<prefix><channel>". A relay goroutine (Run) pattern-
// subscribes to the prefix and hands events from other instances to the
// local channel.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/ports"
	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const DefaultPrefix = "menuia:events:"

type envelope struct {
	Origin  string             `json:"origin"`
	Channel string             `json:"channel"`
	Name    string             `json:"name"`
	Payload json.RawMessage    `json:"payload"`
	Except  ports.ConnectionID `json:"except,omitempty"`
}

// NewClient connects to Redis and verifies the connection with PING.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// EventChannel decorates the instance-local channel with Redis fan-out.
type EventChannel struct {
	client *redis.Client
	local  ports.EventChannel
	prefix string
	origin string
	logger *slog.Logger
}

func NewEventChannel(client *redis.Client, local ports.EventChannel, prefix string, logger *slog.Logger) *EventChannel {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &EventChannel{
		client: client,
		local:  local,
		prefix: prefix,
		origin: kernel.NewUUID().String(),
		logger: logger.With("component", "redis_event_channel"),
	}
}

func (c *EventChannel) JoinShopChannel(conn ports.ConnectionID, slug string) {
	c.local.JoinShopChannel(conn, slug)
}

func (c *EventChannel) JoinDriverChannel(conn ports.ConnectionID, driverID kernel.UUID) {
	c.local.JoinDriverChannel(conn, driverID)
}

func (c *EventChannel) JoinBroadcastChannel(conn ports.ConnectionID) {
	c.local.JoinBroadcastChannel(conn)
}

func (c *EventChannel) LeaveBroadcastChannel(conn ports.ConnectionID) {
	c.local.LeaveBroadcastChannel(conn)
}

func (c *EventChannel) Disconnect(conn ports.ConnectionID) {
	c.local.Disconnect(conn)
}

// Publish delivers locally and then to the other instances. A Redis failure
// is returned as errs.UpstreamError after local delivery happened.
func (c *EventChannel) Publish(ctx context.Context, event ports.Event) error {
	if err := c.local.Publish(ctx, event); err != nil {
		return err
	}

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", event.Name, err)
	}

	body, err := json.Marshal(envelope{
		Origin:  c.origin,
		Channel: event.Channel,
		Name:    event.Name,
		Payload: payload,
		Except:  event.Except,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s envelope: %w", event.Name, err)
	}

	if err = c.client.Publish(ctx, c.prefix+event.Channel, body).Err(); err != nil {
		return errs.NewUpstreamError("redis publish", err)
	}

	return nil
}

// Run relays events published by other instances until ctx is done.
func (c *EventChannel) Run(ctx context.Context) error {
	sub := c.client.PSubscribe(ctx, c.prefix+"*")
	defer func() {
		_ = sub.Close()
	}()

	// Wait for the subscription to be confirmed before reporting readiness.
	if _, err := sub.Receive(ctx); err != nil {
		return errs.NewUpstreamError("redis subscribe", err)
	}
	c.logger.InfoContext(ctx, "Redis relay subscribed", "pattern", c.prefix+"*")

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(context.Background(), "Redis relay stopped")
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			c.relay(ctx, msg)
		}
	}
}

func (c *EventChannel) relay(ctx context.Context, msg *redis.Message) {
	var env envelope
	if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
		c.logger.WarnContext(ctx, "Dropping malformed event", "channel", msg.Channel, "error", err)
		return
	}
	if env.Origin == c.origin {
		return
	}
	if env.Channel == "" {
		env.Channel = strings.TrimPrefix(msg.Channel, c.prefix)
	}

	err := c.local.Publish(ctx, ports.Event{
		Channel: env.Channel,
		Name:    env.Name,
		Payload: env.Payload,
		Except:  env.Except,
	})
	if err != nil {
		c.logger.WarnContext(ctx, "Relaying event failed", "channel", env.Channel, "event", env.Name, "error", err)
	}
}
