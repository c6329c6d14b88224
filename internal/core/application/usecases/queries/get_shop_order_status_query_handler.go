package queries

import (
	"context"

	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

// GetShopOrderStatusQueryHandler returns one order of the shop. Orders of
// other shops are reported as not found.
type GetShopOrderStatusQueryHandler struct {
	orders OrderGetter
}

func NewGetShopOrderStatusQueryHandler(orders OrderGetter) GetShopOrderStatusQueryHandler {
	return GetShopOrderStatusQueryHandler{orders: orders}
}

func (h GetShopOrderStatusQueryHandler) Handle(ctx context.Context, query GetShopOrderStatusQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}
	if o.ShopSlug() != query.Slug() {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	return NewOrderView(o), nil
}
