package queries

import (
	"errors"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
)

var ErrGetCustomerActiveOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerActiveOrdersQuery must be created via NewGetCustomerActiveOrdersQuery constructor",
)

// GetCustomerActiveOrdersQuery finds the orders a customer is still waiting for.
type GetCustomerActiveOrdersQuery struct {
	phone kernel.Phone

	guard guard.ConstructorGuard
}

func NewGetCustomerActiveOrdersQuery(phone string) (GetCustomerActiveOrdersQuery, error) {
	normalized, err := kernel.NewPhone(phone)
	if err != nil {
		return GetCustomerActiveOrdersQuery{}, err
	}

	return GetCustomerActiveOrdersQuery{
		phone: normalized,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetCustomerActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerActiveOrdersQueryIsNotConstructed)
}

func (q GetCustomerActiveOrdersQuery) Phone() string {
	return q.phone.String()
}
