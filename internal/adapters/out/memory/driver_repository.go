package memory

import (
	"context"
	"sort"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

// ErrPhoneIsTaken matches the conflict the Postgres store reports for a
// duplicate phone.
var ErrPhoneIsTaken = errs.NewConflictError("phone", "phone is already registered")

// DriverRepository implements ports.DriverRepository over a Store.
type DriverRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *DriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := aggregate.Snapshot()
	for _, existing := range r.store.drivers {
		if existing.Phone == snap.Phone {
			return ErrPhoneIsTaken
		}
	}
	if _, ok := r.store.drivers[snap.ID]; ok {
		return errs.NewConflictError("driver", "driver already exists")
	}

	r.putLocked(snap)
	return nil
}

func (r *DriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	snap, ok := r.store.drivers[id]
	r.store.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver", id.String())
	}

	return driver.RestoreDriver(snap)
}

func (r *DriverRepository) GetByPhone(ctx context.Context, phone string) (*driver.Driver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, snap := range r.store.drivers {
		if snap.Phone == phone {
			return driver.RestoreDriver(snap)
		}
	}
	return nil, errs.NewObjectNotFoundError("driver", phone)
}

func (r *DriverRepository) ListCandidates(ctx context.Context, presences ...driver.Presence) ([]*driver.Driver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wanted := make(map[driver.Presence]bool, len(presences))
	for _, p := range presences {
		wanted[p] = true
	}

	r.store.mu.RLock()
	snaps := make([]driver.Snapshot, 0)
	for _, snap := range r.store.drivers {
		if wanted[snap.Presence] && snap.Position.IsKnown() {
			snaps = append(snaps, snap)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].ID.String() < snaps[j].ID.String() })

	drivers := make([]*driver.Driver, 0, len(snaps))
	for _, snap := range snaps {
		d, err := driver.RestoreDriver(snap)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}

func (r *DriverRepository) SetPresence(ctx context.Context, id kernel.UUID, presence driver.Presence) error {
	if err := presence.Validate(); err != nil {
		return err
	}
	return r.modify(ctx, id, func(snap *driver.Snapshot) bool {
		snap.Presence = presence
		return true
	})
}

func (r *DriverRepository) SwapPresence(ctx context.Context, id kernel.UUID, from, to driver.Presence) (bool, error) {
	if err := to.Validate(); err != nil {
		return false, err
	}

	swapped := false
	err := r.modify(ctx, id, func(snap *driver.Snapshot) bool {
		if snap.Presence != from {
			return false
		}
		snap.Presence = to
		swapped = true
		return true
	})
	return swapped, err
}

func (r *DriverRepository) UpdateLocation(ctx context.Context, id kernel.UUID, point kernel.GeoPoint, at time.Time) error {
	if !point.IsValid() {
		return errs.NewValueIsInvalidError("location")
	}
	return r.modify(ctx, id, func(snap *driver.Snapshot) bool {
		snap.Position = driver.Position{Point: point, UpdatedAt: at}
		return true
	})
}

func (r *DriverRepository) Credit(ctx context.Context, id kernel.UUID, amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidError("amount")
	}
	return r.modify(ctx, id, func(snap *driver.Snapshot) bool {
		snap.Earnings += amount
		return true
	})
}

func (r *DriverRepository) MarkStaleOffline(ctx context.Context, before time.Time) ([]kernel.UUID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ids := make([]kernel.UUID, 0)
	for id, snap := range r.store.drivers {
		if snap.Presence != driver.PresenceOnline {
			continue
		}
		if snap.Position.IsKnown() && !snap.Position.UpdatedAt.Before(before) {
			continue
		}
		snap.Presence = driver.PresenceOffline
		r.putLocked(snap)
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

// modify applies change to the stored driver under the store lock. change
// reports whether it wrote anything.
func (r *DriverRepository) modify(ctx context.Context, id kernel.UUID, change func(*driver.Snapshot) bool) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap, ok := r.store.drivers[id]
	if !ok {
		return errs.NewObjectNotFoundError("driver", id.String())
	}
	if change(&snap) {
		r.putLocked(snap)
	}
	return nil
}

func (r *DriverRepository) putLocked(snap driver.Snapshot) {
	previous, existed := r.store.drivers[snap.ID]
	r.store.drivers[snap.ID] = snap
	r.uow.remember(func() {
		if existed {
			r.store.drivers[snap.ID] = previous
			return
		}
		delete(r.store.drivers, snap.ID)
	})
}
