package commands

import (
	"context"

	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
)

// UpdateDriverLocationCommandHandler overwrites the driver's position and
// returns the orders the driver carries, whose shops follow the position.
type UpdateDriverLocationCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateDriverLocationCommandHandler(uowFactory UoWFactory) UpdateDriverLocationCommandHandler {
	return UpdateDriverLocationCommandHandler{uowFactory: uowFactory}
}

func (h UpdateDriverLocationCommandHandler) Handle(ctx context.Context, cmd UpdateDriverLocationCommand) ([]*order.Order, error) {
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

	if err := uow.DriverRepository().UpdateLocation(ctx, cmd.DriverID(), cmd.Point(), cmd.ReportedAt()); err != nil {
		return nil, err
	}

	active, err := uow.OrderRepository().FindActiveByDriver(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return active, nil
}
