package commands

import (
	"context"

	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/core/ports"
)

// DefaultDeliveryFee is credited to a driver per delivered order.
const DefaultDeliveryFee = 35

// AdvanceOrderCommandHandler applies a driver's step. Delivering an order
// credits the delivery fee and returns the driver to online, unless the
// driver still carries other active orders.
type AdvanceOrderCommandHandler struct {
	uowFactory  UoWFactory
	deliveryFee float64
}

func NewAdvanceOrderCommandHandler(uowFactory UoWFactory, deliveryFee float64) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory:  uowFactory,
		deliveryFee: deliveryFee,
	}
}

func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Advance(cmd.DriverID(), cmd.Step(), cmd.At()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if o.Status() == order.StatusCompleted {
		driverRepo := uow.DriverRepository()
		if err = driverRepo.Credit(ctx, cmd.DriverID(), h.deliveryFee); err != nil {
			return nil, err
		}
		if err = releaseDriver(ctx, orderRepo, driverRepo, cmd.DriverID(), false); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// releaseDriver sets a driver without remaining active orders back to
// online. With onlyIfBusy an offline driver stays offline.
func releaseDriver(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	driverRepo ports.DriverRepository,
	driverID kernel.UUID,
	onlyIfBusy bool,
) error {
	active, err := orderRepo.FindActiveByDriver(ctx, driverID)
	if err != nil {
		return err
	}

	next := driver.PresenceOnline
	if len(active) > 0 {
		next = driver.PresenceBusy
	}

	if onlyIfBusy {
		_, err = driverRepo.SwapPresence(ctx, driverID, driver.PresenceBusy, next)
		return err
	}
	return driverRepo.SetPresence(ctx, driverID, next)
}
