package commands

import (
	"context"

	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
)

// PresenceResult is the driver after the change and the orders the driver
// still carries.
type PresenceResult struct {
	Driver       *driver.Driver
	ActiveOrders []*order.Order
	Changed      bool
}

// SetDriverPresenceCommandHandler applies presence changes.
//
// Going online restores busy when the driver still carries active orders.
// Going offline is unconditional. Swaps never touch a driver whose presence
// moved on in the meantime, so a disconnect cannot downgrade a busy driver.
type SetDriverPresenceCommandHandler struct {
	uowFactory UoWFactory
}

func NewSetDriverPresenceCommandHandler(uowFactory UoWFactory) SetDriverPresenceCommandHandler {
	return SetDriverPresenceCommandHandler{uowFactory: uowFactory}
}

func (h SetDriverPresenceCommandHandler) Handle(ctx context.Context, cmd SetDriverPresenceCommand) (PresenceResult, error) {
	if err := cmd.Validate(); err != nil {
		return PresenceResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PresenceResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()

	d, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return PresenceResult{}, err
	}

	active, err := uow.OrderRepository().FindActiveByDriver(ctx, d.ID())
	if err != nil {
		return PresenceResult{}, err
	}

	next := cmd.Requested()
	if next == driver.PresenceOnline && len(active) > 0 {
		next = driver.PresenceBusy
	}

	changed := true
	if cmd.Expected() != "" {
		changed, err = driverRepo.SwapPresence(ctx, d.ID(), cmd.Expected(), next)
	} else {
		err = driverRepo.SetPresence(ctx, d.ID(), next)
	}
	if err != nil {
		return PresenceResult{}, err
	}

	if changed {
		if err = d.SetPresence(next); err != nil {
			return PresenceResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return PresenceResult{}, err
	}

	return PresenceResult{Driver: d, ActiveOrders: active, Changed: changed}, nil
}
