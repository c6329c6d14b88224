// Package rabbitmq announces committed order changes on a RabbitMQ topic
// exchange. Messages are persistent JSON order views routed by
// "order.<status>".
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/daniel06264831/menuia/internal/core/application/usecases/queries"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange = "menuia.orders"

	publishTimeout = 5 * time.Second
)

type OrderChangedMessage struct {
	Event      string            `json:"event"`
	OccurredAt time.Time         `json:"occurredAt"`
	Order      queries.OrderView `json:"order"`
}

// OrderEventPublisher implements ports.OrderEventPublisher.
type OrderEventPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *slog.Logger
}

// Dial opens a connection and a channel and declares the durable topic
// exchange.
func Dial(url, exchange string, logger *slog.Logger) (*OrderEventPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errs.NewUpstreamError("rabbitmq dial", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.NewUpstreamError("rabbitmq channel", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.NewUpstreamError("rabbitmq exchange declare", err)
	}

	return &OrderEventPublisher{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		logger:   logger.With("component", "order_event_publisher"),
	}, nil
}

func (p *OrderEventPublisher) Exchange() string {
	return p.exchange
}

func (p *OrderEventPublisher) PublishOrderChanged(ctx context.Context, o *order.Order) {
	if o == nil {
		return
	}

	key := RoutingKey(o)
	body, err := json.Marshal(OrderChangedMessage{
		Event:      "order.changed",
		OccurredAt: time.Now().UTC(),
		Order:      queries.NewOrderView(o),
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to marshal order event", "order_id", o.ID(), "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		MessageId:    fmt.Sprintf("%s-%d", o.ID(), o.Version()),
		Body:         body,
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish order event",
			"order_id", o.ID(),
			"routing_key", key,
			"error", err,
		)
		return
	}

	p.logger.DebugContext(ctx, "Order event published", "order_id", o.ID(), "routing_key", key)
}

func (p *OrderEventPublisher) Close() error {
	if p == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// RoutingKey is "order.<status>", e.g. "order.driver_assigned".
func RoutingKey(o *order.Order) string {
	return "order." + string(o.Status())
}
