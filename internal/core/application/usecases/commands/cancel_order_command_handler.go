package commands

import (
	"context"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/core/ports"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

// CancelOrderCommandHandler moves an order to cancelled/rejected. A busy
// driver left without active orders goes back to online; an offline driver
// stays offline.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	if err = o.Cancel(cmd.At()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if driverID := o.DriverID(); driverID != nil {
		if err = releaseDriver(ctx, orderRepo, uow.DriverRepository(), *driverID, true); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// loadShopOrder hides orders of other shops behind ObjectNotFound.
func loadShopOrder(ctx context.Context, repo ports.OrderRepository, id kernel.UUID, shopSlug string) (*order.Order, error) {
	o, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if shopSlug != "" && o.ShopSlug() != shopSlug {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}
