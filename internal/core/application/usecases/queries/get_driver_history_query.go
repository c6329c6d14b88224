package queries

import (
	"errors"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
)

// DriverHistoryLimit is how many completed deliveries a driver sees.
const DriverHistoryLimit = 50

var ErrGetDriverHistoryQueryIsNotConstructed = errors.New(
	"GetDriverHistoryQuery must be created via NewGetDriverHistoryQuery constructor",
)

type GetDriverHistoryQuery struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDriverHistoryQuery(driverID kernel.UUID) (GetDriverHistoryQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverHistoryQuery{}, err
	}

	return GetDriverHistoryQuery{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetDriverHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverHistoryQueryIsNotConstructed)
}

func (q GetDriverHistoryQuery) DriverID() kernel.UUID {
	return q.driverID
}
