package commands

import (
	"context"

	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
)

// ClaimResult is the state after a successful claim.
type ClaimResult struct {
	Order  *order.Order
	Driver *driver.Driver
}

// ClaimOrderCommandHandler makes a driver the exclusive assignee of an order
// and marks the driver busy, in one transaction.
//
// The order is written with OrderRepository.Claim, whose conditional update
// is what decides between concurrent claimers; the in-memory check in
// order.Claim only fails fast.
//
// Example:
//
//	res, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrOrderAlreadyTaken) {
//	    // tell the driver someone else was faster
//	}
type ClaimOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewClaimOrderCommandHandler(uowFactory UoWFactory) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{uowFactory: uowFactory}
}

func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (ClaimResult, error) {
	if err := cmd.Validate(); err != nil {
		return ClaimResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ClaimResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	orderRepo := uow.OrderRepository()

	d, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return ClaimResult{}, err
	}

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return ClaimResult{}, err
	}

	assignment := order.Assignment{DriverID: d.ID(), DriverName: d.Name(), DriverPhone: d.Phone()}
	if err = o.Claim(assignment, cmd.ClaimedAt()); err != nil {
		return ClaimResult{}, err
	}

	if err = orderRepo.Claim(ctx, o); err != nil {
		return ClaimResult{}, err
	}

	if err = driverRepo.SetPresence(ctx, d.ID(), driver.PresenceBusy); err != nil {
		return ClaimResult{}, err
	}
	if err = d.SetPresence(driver.PresenceBusy); err != nil {
		return ClaimResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ClaimResult{}, err
	}

	return ClaimResult{Order: o, Driver: d}, nil
}
