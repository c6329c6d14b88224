package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over a Store.
type OrderRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	if _, ok := r.store.orders[aggregate.ID()]; ok {
		r.store.mu.Unlock()
		return errs.NewConflictError("order", "order already exists")
	}
	r.putLocked(orderRecord{snapshot: cloneOrder(aggregate.Snapshot())})
	r.store.mu.Unlock()

	r.uow.track(ctx, aggregate)
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	current, ok := r.store.orders[aggregate.ID()]
	if !ok {
		r.store.mu.Unlock()
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if current.snapshot.Version != aggregate.Version() {
		r.store.mu.Unlock()
		return errs.NewVersionIsInvalidError("order", fmt.Errorf("version %d is stale", aggregate.Version()))
	}

	snap := cloneOrder(aggregate.Snapshot())
	snap.Version++
	r.putLocked(orderRecord{snapshot: snap, claimedAt: current.claimedAt})
	r.store.mu.Unlock()

	aggregate.BumpVersion()
	r.uow.track(ctx, aggregate)
	return nil
}

// Claim checks and writes under the store lock, so of two concurrent claims
// only the first one finds the order unassigned.
func (r *OrderRepository) Claim(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.Assignment() == nil {
		return order.ErrOrderIsNotClaimed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	current, ok := r.store.orders[aggregate.ID()]
	if !ok {
		r.store.mu.Unlock()
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if current.snapshot.Assignment != nil || current.snapshot.Status != order.StatusPending {
		r.store.mu.Unlock()
		return order.ErrOrderAlreadyTaken
	}

	snap := cloneOrder(aggregate.Snapshot())
	snap.Version = current.snapshot.Version + 1
	r.putLocked(orderRecord{snapshot: snap, claimedAt: aggregate.UpdatedAt()})
	r.store.mu.Unlock()

	aggregate.BumpVersion()
	r.uow.track(ctx, aggregate)
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	rec, ok := r.store.orders[id]
	r.store.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	return order.RestoreOrder(cloneOrder(rec.snapshot))
}

func (r *OrderRepository) FindActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*order.Order, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	recs, err := r.store.selectOrders(ctx, func(rec orderRecord) bool {
		s := rec.snapshot
		return s.Assignment != nil && s.Assignment.DriverID.IsEqual(driverID) && !s.Status.IsTerminal()
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].claimedAt.After(recs[j].claimedAt) })
	return restoreOrders(recs)
}

func (r *OrderRepository) FindPendingDispatch(ctx context.Context) ([]*order.Order, error) {
	recs, err := r.store.selectOrders(ctx, func(rec orderRecord) bool {
		s := rec.snapshot
		return s.Status == order.StatusPending &&
			s.DeliveryStatus == order.DeliveryPendingAssignment &&
			s.Fulfillment == order.FulfillmentDelivery &&
			s.Assignment == nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].snapshot.CreatedAt.Before(recs[j].snapshot.CreatedAt)
	})
	return restoreOrders(recs)
}

func (r *OrderRepository) FindCompletedByDriver(ctx context.Context, driverID kernel.UUID, limit int) ([]*order.Order, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	recs, err := r.store.selectOrders(ctx, func(rec orderRecord) bool {
		s := rec.snapshot
		return s.Assignment != nil && s.Assignment.DriverID.IsEqual(driverID) &&
			s.Status == order.StatusCompleted && s.DeliveryStatus == order.DeliveryDelivered
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].snapshot.UpdatedAt.After(recs[j].snapshot.UpdatedAt)
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return restoreOrders(recs)
}

func (r *OrderRepository) CountCreatedSince(ctx context.Context, shopSlug string, since time.Time) (int, error) {
	recs, err := r.store.selectOrders(ctx, func(rec orderRecord) bool {
		return rec.snapshot.Shop.Slug == shopSlug && !rec.snapshot.CreatedAt.Before(since)
	})
	if err != nil {
		return 0, err
	}
	return len(recs), nil
}

func (r *OrderRepository) ExistsActiveForCustomer(ctx context.Context, phone string, method order.PaymentMethod) (bool, error) {
	recs, err := r.store.selectOrders(ctx, func(rec orderRecord) bool {
		s := rec.snapshot
		return s.CustomerPhone == phone && s.Payment == method && !s.Status.IsTerminal()
	})
	if err != nil {
		return false, err
	}
	return len(recs) > 0, nil
}

func (r *OrderRepository) putLocked(rec orderRecord) {
	id := rec.snapshot.ID
	previous, existed := r.store.orders[id]
	r.store.orders[id] = rec
	r.uow.remember(func() {
		if existed {
			r.store.orders[id] = previous
			return
		}
		delete(r.store.orders, id)
	})
}

// ListByShop returns a shop's orders created in [from, to), newest first.
// A zero bound is open.
func (s *Store) ListByShop(ctx context.Context, slug string, from, to time.Time, limit int) ([]*order.Order, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	recs, err := s.selectOrders(ctx, func(rec orderRecord) bool {
		created := rec.snapshot.CreatedAt
		return rec.snapshot.Shop.Slug == slug &&
			(from.IsZero() || !created.Before(from)) &&
			(to.IsZero() || created.Before(to))
	})
	if err != nil {
		return nil, err
	}

	sortNewestFirst(recs)
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return restoreOrders(recs)
}

// FindActiveByCustomer returns the phone's non-terminal orders, newest first.
func (s *Store) FindActiveByCustomer(ctx context.Context, phone string) ([]*order.Order, error) {
	recs, err := s.selectOrders(ctx, func(rec orderRecord) bool {
		return rec.snapshot.CustomerPhone == phone && !rec.snapshot.Status.IsTerminal()
	})
	if err != nil {
		return nil, err
	}

	sortNewestFirst(recs)
	return restoreOrders(recs)
}

func (s *Store) selectOrders(ctx context.Context, match func(orderRecord) bool) ([]orderRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]orderRecord, 0)
	for _, rec := range s.orders {
		if match(rec) {
			recs = append(recs, rec)
		}
	}

	// Map order is random; fall back to the id for a stable result.
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].snapshot.ID.String() < recs[j].snapshot.ID.String()
	})
	return recs, nil
}

func sortNewestFirst(recs []orderRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].snapshot.CreatedAt.After(recs[j].snapshot.CreatedAt)
	})
}

func restoreOrders(recs []orderRecord) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(recs))
	for _, rec := range recs {
		o, err := order.RestoreOrder(cloneOrder(rec.snapshot))
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func cloneOrder(s order.Snapshot) order.Snapshot {
	s.Items = append([]order.LineItem(nil), s.Items...)
	if s.Assignment != nil {
		a := *s.Assignment
		s.Assignment = &a
	}
	return s
}
