package commands

import (
	"errors"
	"strings"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
)

var ErrCompletePickupOrderCommandIsNotConstructed = errors.New(
	"CompletePickupOrderCommand must be created via NewCompletePickupOrderCommand constructor",
)

// CompletePickupOrderCommand is a shop handing a pickup order to its customer.
type CompletePickupOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	shopSlug string
	at       time.Time

	guard guard.ConstructorGuard
}

func NewCompletePickupOrderCommand(orderID kernel.UUID, shopSlug string, at time.Time) (CompletePickupOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CompletePickupOrderCommand{}, err
	}

	return CompletePickupOrderCommand{
		orderID:  orderID,
		shopSlug: strings.ToLower(strings.TrimSpace(shopSlug)),
		at:       at,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CompletePickupOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompletePickupOrderCommandIsNotConstructed)
}

func (c CompletePickupOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CompletePickupOrderCommand) ShopSlug() string {
	return c.shopSlug
}

func (c CompletePickupOrderCommand) At() time.Time {
	return c.at
}
