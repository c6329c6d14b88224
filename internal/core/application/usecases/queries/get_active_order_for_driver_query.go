package queries

import (
	"errors"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
)

var ErrGetActiveOrderForDriverQueryIsNotConstructed = errors.New(
	"GetActiveOrderForDriverQuery must be created via NewGetActiveOrderForDriverQuery constructor",
)

// GetActiveOrderForDriverQuery lets a reconnecting driver re-derive what they
// are carrying.
type GetActiveOrderForDriverQuery struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetActiveOrderForDriverQuery(driverID kernel.UUID) (GetActiveOrderForDriverQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetActiveOrderForDriverQuery{}, err
	}

	return GetActiveOrderForDriverQuery{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetActiveOrderForDriverQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrderForDriverQueryIsNotConstructed)
}

func (q GetActiveOrderForDriverQuery) DriverID() kernel.UUID {
	return q.driverID
}
