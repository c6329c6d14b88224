package commands

import (
	"context"

	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
)

type CompletePickupOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCompletePickupOrderCommandHandler(uowFactory UoWFactory) CompletePickupOrderCommandHandler {
	return CompletePickupOrderCommandHandler{uowFactory: uowFactory}
}

func (h CompletePickupOrderCommandHandler) Handle(ctx context.Context, cmd CompletePickupOrderCommand) (*order.Order, error) {
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

	o, err := loadShopOrder(ctx, orderRepo, cmd.OrderID(), cmd.ShopSlug())
	if err != nil {
		return nil, err
	}

	if err = o.CompletePickup(cmd.At()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
