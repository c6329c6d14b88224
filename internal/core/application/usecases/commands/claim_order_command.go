package commands

import (
	"errors"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand is a driver accepting an offered order.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	driverID  kernel.UUID
	claimedAt time.Time

	guard guard.ConstructorGuard
}

func NewClaimOrderCommand(orderID, driverID kernel.UUID, claimedAt time.Time) (ClaimOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return ClaimOrderCommand{}, err
	}

	return ClaimOrderCommand{
		orderID:   orderID,
		driverID:  driverID,
		claimedAt: claimedAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ClaimOrderCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c ClaimOrderCommand) ClaimedAt() time.Time {
	return c.claimedAt
}
