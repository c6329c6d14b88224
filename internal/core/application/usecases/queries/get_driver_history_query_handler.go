package queries

import (
	"context"
)

// GetDriverHistoryQueryHandler returns the driver's last delivered orders,
// newest first.
type GetDriverHistoryQueryHandler struct {
	orders CompletedOrderFinder
}

func NewGetDriverHistoryQueryHandler(orders CompletedOrderFinder) GetDriverHistoryQueryHandler {
	return GetDriverHistoryQueryHandler{orders: orders}
}

func (h GetDriverHistoryQueryHandler) Handle(ctx context.Context, query GetDriverHistoryQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.FindCompletedByDriver(ctx, query.DriverID(), DriverHistoryLimit)
	if err != nil {
		return nil, err
	}

	return newOrderViews(orders), nil
}
