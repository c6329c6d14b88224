package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Callers Begin, defer
// Rollback and Commit; Rollback after Commit is a no-op.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit commits the transaction and then hands every order tracked by
	// the repositories to the OrderEventPublisher.
	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	// The repositories below are bound to the transaction started by Begin.

	OrderRepository() OrderRepository
	DriverRepository() DriverRepository
	ShopRepository() ShopRepository
}
