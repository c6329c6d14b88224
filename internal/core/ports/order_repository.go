// Package ports defines the contracts between the dispatch core and its
// infrastructure: storage, real-time channels, retry scheduling and order
// change announcements.
package ports

import (
	"context"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a newly placed order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the aggregate if the stored version still equals
	// aggregate.Version(). A mismatch returns errs.VersionIsInvalidError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Claim persists a successful order.Claim with a single conditional write
	// that only matches while the stored order is pending and has no driver.
	// When nothing matched it returns order.ErrOrderAlreadyTaken.
	Claim(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindActiveByDriver returns the driver's non-terminal orders, most
	// recently claimed first.
	FindActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*order.Order, error)

	// FindPendingDispatch returns delivery orders still waiting for a driver.
	FindPendingDispatch(ctx context.Context) ([]*order.Order, error)

	// FindCompletedByDriver returns up to limit delivered orders, newest first.
	FindCompletedByDriver(ctx context.Context, driverID kernel.UUID, limit int) ([]*order.Order, error)

	// CountCreatedSince counts a shop's orders created at or after since.
	CountCreatedSince(ctx context.Context, shopSlug string, since time.Time) (int, error)

	// ExistsActiveForCustomer reports whether the phone has a non-terminal
	// order paid with method.
	ExistsActiveForCustomer(ctx context.Context, phone string, method order.PaymentMethod) (bool, error)
}
