// Package memory is a process-local implementation of the storage ports.
//
// It backs single-instance deployments without Postgres and the dispatch
// tests. A unit of work holds the store-wide transaction lock from Begin
// until Commit or Rollback, which makes every unit of work serializable;
// writes made inside it are undone on Rollback. Reads and writes outside a
// unit of work run immediately and only take the data lock, so such a read
// can observe writes of an open unit of work that is later rolled back.
// Dispatch ranking reads this way; a dirty read there only changes which
// drivers receive an offer, and the claim itself runs in a unit of work.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/core/domain/model/shop"
	"github.com/daniel06264831/menuia/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback without a Begin.
var ErrNoTransaction = errors.New("memory: no transaction in progress")

type orderRecord struct {
	snapshot  order.Snapshot
	claimedAt time.Time
}

// Store holds orders, drivers and shops.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	orders  map[kernel.UUID]orderRecord
	drivers map[kernel.UUID]driver.Snapshot
	shops   map[string]shop.Snapshot
}

func NewStore() *Store {
	return &Store{
		orders:  make(map[kernel.UUID]orderRecord),
		drivers: make(map[kernel.UUID]driver.Snapshot),
		shops:   make(map[string]shop.Snapshot),
	}
}

type UnitOfWorkFactory struct {
	store     *Store
	publisher ports.OrderEventPublisher
}

// NewUnitOfWorkFactory creates the factory. publisher may be nil.
func NewUnitOfWorkFactory(store *Store, publisher ports.OrderEventPublisher) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store, publisher: publisher}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store, publisher: f.publisher}
}

// UnitOfWork is not safe for concurrent use; create one per operation.
type UnitOfWork struct {
	store     *Store
	publisher ports.OrderEventPublisher

	inTx    bool
	undo    []func()
	tracked []*order.Order
}

// Begin takes the store's transaction lock. Calling it again reuses the
// open transaction.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.inTx {
		return nil
	}

	uow.store.txMu.Lock()
	uow.inTx = true
	return nil
}

func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.inTx {
		return ErrNoTransaction
	}

	tracked := uow.tracked
	uow.finish()
	uow.publish(ctx, tracked)
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.inTx {
		return ErrNoTransaction
	}

	uow.store.mu.Lock()
	for i := len(uow.undo) - 1; i >= 0; i-- {
		uow.undo[i]()
	}
	uow.store.mu.Unlock()

	uow.finish()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{store: uow.store, uow: uow}
}

func (uow *UnitOfWork) DriverRepository() ports.DriverRepository {
	return &DriverRepository{store: uow.store, uow: uow}
}

func (uow *UnitOfWork) ShopRepository() ports.ShopRepository {
	return &ShopRepository{store: uow.store, uow: uow}
}

func (uow *UnitOfWork) finish() {
	uow.undo = nil
	uow.tracked = nil
	uow.inTx = false
	uow.store.txMu.Unlock()
}

// remember registers an undo step. It must be called with store.mu held.
func (uow *UnitOfWork) remember(step func()) {
	if uow.inTx {
		uow.undo = append(uow.undo, step)
	}
}

// track queues a written order for publication. Outside a transaction the
// order is published right away.
func (uow *UnitOfWork) track(ctx context.Context, o *order.Order) {
	if uow.inTx {
		uow.tracked = append(uow.tracked, o)
		return
	}
	uow.publish(ctx, []*order.Order{o})
}

func (uow *UnitOfWork) publish(ctx context.Context, orders []*order.Order) {
	if uow.publisher == nil {
		return
	}

	seen := make(map[kernel.UUID]bool, len(orders))
	for _, o := range orders {
		if seen[o.ID()] {
			continue
		}
		seen[o.ID()] = true
		uow.publisher.PublishOrderChanged(ctx, o)
	}
}
