package commands

import (
	"errors"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand is a driver reporting the next delivery step.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID kernel.UUID
	step     order.DeliveryStatus
	at       time.Time

	guard guard.ConstructorGuard
}

func NewAdvanceOrderCommand(orderID, driverID kernel.UUID, step order.DeliveryStatus, at time.Time) (AdvanceOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), driverID.Validate(), step.Validate()); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return AdvanceOrderCommand{
		orderID:  orderID,
		driverID: driverID,
		step:     step,
		at:       at,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdvanceOrderCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c AdvanceOrderCommand) Step() order.DeliveryStatus {
	return c.step
}

func (c AdvanceOrderCommand) At() time.Time {
	return c.at
}
