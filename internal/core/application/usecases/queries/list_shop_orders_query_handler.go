package queries

import (
	"context"
)

// ListShopOrdersQueryHandler serves the shop's order board. Callers check
// the shop credentials first (see AuthenticateShopQueryHandler).
//
// Example:
//
//	query, err := NewListShopOrdersQuery("tacos", dayStart, dayEnd, 0)
//	if err != nil {
//	    return err
//	}
//	views, err := NewListShopOrdersQueryHandler(reader).Handle(ctx, query)
type ListShopOrdersQueryHandler struct {
	reader ShopOrderReader
}

func NewListShopOrdersQueryHandler(reader ShopOrderReader) ListShopOrdersQueryHandler {
	return ListShopOrdersQueryHandler{reader: reader}
}

func (h ListShopOrdersQueryHandler) Handle(ctx context.Context, query ListShopOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.ListByShop(ctx, query.Slug(), query.From(), query.To(), query.Limit())
	if err != nil {
		return nil, err
	}

	return newOrderViews(orders), nil
}
