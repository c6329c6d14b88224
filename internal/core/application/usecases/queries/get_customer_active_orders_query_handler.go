package queries

import (
	"context"
)

type GetCustomerActiveOrdersQueryHandler struct {
	reader CustomerOrderReader
}

func NewGetCustomerActiveOrdersQueryHandler(reader CustomerOrderReader) GetCustomerActiveOrdersQueryHandler {
	return GetCustomerActiveOrdersQueryHandler{reader: reader}
}

// Handle returns an empty slice when the customer has nothing in progress.
func (h GetCustomerActiveOrdersQueryHandler) Handle(ctx context.Context, query GetCustomerActiveOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.FindActiveByCustomer(ctx, query.Phone())
	if err != nil {
		return nil, err
	}

	return newOrderViews(orders), nil
}
