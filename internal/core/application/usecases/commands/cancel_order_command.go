package commands

import (
	"errors"
	"strings"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand rejects an order. When shopSlug is set, the order must
// belong to that shop.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	shopSlug string
	at       time.Time

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, shopSlug string, at time.Time) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID:  orderID,
		shopSlug: strings.ToLower(strings.TrimSpace(shopSlug)),
		at:       at,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) ShopSlug() string {
	return c.shopSlug
}

func (c CancelOrderCommand) At() time.Time {
	return c.at
}
