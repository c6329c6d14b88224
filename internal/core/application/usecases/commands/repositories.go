// Package commands contains the operations that change dispatch state.
// Every handler follows the same shape: validate the command, begin a unit
// of work, load aggregates, apply domain behaviour, persist and commit.
package commands

import (
	"context"

	"github.com/daniel06264831/menuia/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	ShopRepoFactory interface {
		ShopRepository() ports.ShopRepository
	}

	// DriverUoW is used by commands that only touch drivers.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// ShopUoW is used by commands that only touch shops.
	ShopUoW interface {
		TxManager
		ShopRepoFactory
	}

	ShopUoWFactory interface {
		Create() ShopUoW
	}

	// UoW spans orders, drivers and shops.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   o, err := uow.OrderRepository().Get(ctx, id)
	//   // ... mutate and persist
	//
	//   return uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
		ShopRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
