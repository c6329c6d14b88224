package commands

import (
	"errors"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
)

var ErrUpdateDriverLocationCommandIsNotConstructed = errors.New(
	"UpdateDriverLocationCommand must be created via NewUpdateDriverLocationCommand constructor",
)

// UpdateDriverLocationCommand is a periodic position report.
type UpdateDriverLocationCommand struct { //nolint:recvcheck //using for validation
	driverID   kernel.UUID
	point      kernel.GeoPoint
	reportedAt time.Time

	guard guard.ConstructorGuard
}

// NewUpdateDriverLocationCommand validates the raw coordinates; a (0, 0)
// report is rejected.
func NewUpdateDriverLocationCommand(driverID kernel.UUID, lat, lng float64, reportedAt time.Time) (UpdateDriverLocationCommand, error) {
	point, err := kernel.NewGeoPoint(lat, lng)
	if err = errors.Join(driverID.Validate(), err); err != nil {
		return UpdateDriverLocationCommand{}, err
	}

	return UpdateDriverLocationCommand{
		driverID:   driverID,
		point:      point,
		reportedAt: reportedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverLocationCommandIsNotConstructed)
}

func (c UpdateDriverLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c UpdateDriverLocationCommand) Point() kernel.GeoPoint {
	return c.point
}

func (c UpdateDriverLocationCommand) ReportedAt() time.Time {
	return c.reportedAt
}
