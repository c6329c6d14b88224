package queries

import (
	"context"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/core/domain/model/shop"
)

type (
	// ShopOrderReader lists a shop's orders created in [from, to), newest
	// first. A zero bound is open.
	ShopOrderReader interface {
		ListByShop(ctx context.Context, slug string, from, to time.Time, limit int) ([]*order.Order, error)
	}

	// CustomerOrderReader returns the customer's non-terminal orders.
	CustomerOrderReader interface {
		FindActiveByCustomer(ctx context.Context, phone string) ([]*order.Order, error)
	}

	ActiveOrderFinder interface {
		FindActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*order.Order, error)
	}

	CompletedOrderFinder interface {
		FindCompletedByDriver(ctx context.Context, driverID kernel.UUID, limit int) ([]*order.Order, error)
	}

	OrderGetter interface {
		Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	}

	DriverFinder interface {
		GetByPhone(ctx context.Context, phone string) (*driver.Driver, error)
	}

	ShopGetter interface {
		Get(ctx context.Context, slug string) (*shop.Shop, error)
	}
)
