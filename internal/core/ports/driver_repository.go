package ports

import (
	"context"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for drivers.
//
// Presence, location and earnings are changed with single-statement updates
// so concurrent events for the same driver never overwrite each other's
// fields. Every method addressing an unknown id returns
// errs.ObjectNotFoundError and changes nothing.
type DriverRepository interface {
	// Add persists a new driver. A duplicate phone is an errs.ConflictError.
	Add(ctx context.Context, aggregate *driver.Driver) error

	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetByPhone looks a driver up by normalized phone.
	GetByPhone(ctx context.Context, phone string) (*driver.Driver, error)

	// ListCandidates returns drivers whose presence is in presences and who
	// have reported a location.
	ListCandidates(ctx context.Context, presences ...driver.Presence) ([]*driver.Driver, error)

	SetPresence(ctx context.Context, id kernel.UUID, presence driver.Presence) error

	// SwapPresence sets to only while the stored presence equals from and
	// reports whether it did.
	SwapPresence(ctx context.Context, id kernel.UUID, from, to driver.Presence) (bool, error)

	UpdateLocation(ctx context.Context, id kernel.UUID, point kernel.GeoPoint, at time.Time) error

	// Credit adds amount to the driver's earnings atomically.
	Credit(ctx context.Context, id kernel.UUID, amount float64) error

	// MarkStaleOffline turns online drivers whose last location is older than
	// before (or missing) offline and returns their ids.
	MarkStaleOffline(ctx context.Context, before time.Time) ([]kernel.UUID, error)
}
