package commands

import (
	"context"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

// DefaultShippingFee is charged on delivery orders that arrive without a
// shipping amount.
const DefaultShippingFee = 35

var (
	ErrCustomerHasActiveCashOrder = errs.NewConflictError("paymentMethod", "customer already has an active cash order")
	ErrCustomerHasActiveCardOrder = errs.NewConflictError("paymentMethod", "customer already has an active card order")
	ErrShopIsClosed               = errs.NewConflictError("shop", "shop is not accepting orders")
)

// PlaceOrderCommandHandler persists a new order for a shop.
//
// The daily id is the number of the shop's orders since local midnight plus
// one. Two orders placed at the same instant for the same shop may get the
// same daily id; it is a display number, not a key.
type PlaceOrderCommandHandler struct {
	uowFactory      UoWFactory
	location        *time.Location
	defaultShipping float64
}

// NewPlaceOrderCommandHandler builds the handler. location is the shops'
// time zone for the daily id reset; nil means UTC.
func NewPlaceOrderCommandHandler(uowFactory UoWFactory, location *time.Location, defaultShipping float64) PlaceOrderCommandHandler {
	if location == nil {
		location = time.UTC
	}
	return PlaceOrderCommandHandler{
		uowFactory:      uowFactory,
		location:        location,
		defaultShipping: defaultShipping,
	}
}

func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
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

	s, err := uow.ShopRepository().Get(ctx, cmd.ShopSlug())
	if err != nil {
		return nil, err
	}
	if !s.IsOpen() {
		return nil, ErrShopIsClosed
	}

	orderRepo := uow.OrderRepository()

	busy, err := orderRepo.ExistsActiveForCustomer(ctx, cmd.Customer().Phone(), cmd.Payment())
	if err != nil {
		return nil, err
	}
	if busy {
		if cmd.Payment() == order.PaymentCard {
			return nil, ErrCustomerHasActiveCardOrder
		}
		return nil, ErrCustomerHasActiveCashOrder
	}

	count, err := orderRepo.CountCreatedSince(ctx, s.Slug(), h.midnight(cmd.PlacedAt()))
	if err != nil {
		return nil, err
	}

	costs := cmd.Costs().WithDefaults(cmd.Items(), cmd.Fulfillment(), h.defaultShipping)

	o, err := order.NewOrder(cmd.OrderID(), s.Ref(), cmd.Customer(), cmd.Items(), costs,
		cmd.Payment(), cmd.Fulfillment(), count+1, cmd.PlacedAt())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h PlaceOrderCommandHandler) midnight(t time.Time) time.Time {
	local := t.In(h.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, h.location)
}
