package queries

import (
	"context"
)

type GetActiveOrderForDriverQueryHandler struct {
	orders ActiveOrderFinder
}

func NewGetActiveOrderForDriverQueryHandler(orders ActiveOrderFinder) GetActiveOrderForDriverQueryHandler {
	return GetActiveOrderForDriverQueryHandler{orders: orders}
}

// Handle returns the most recently claimed non-terminal order, or nil when
// the driver carries nothing.
func (h GetActiveOrderForDriverQueryHandler) Handle(ctx context.Context, query GetActiveOrderForDriverQuery) (*OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	active, err := h.orders.FindActiveByDriver(ctx, query.DriverID())
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, nil //nolint:nilnil // no active order is a valid answer
	}

	view := NewOrderView(active[0])
	return &view, nil
}
