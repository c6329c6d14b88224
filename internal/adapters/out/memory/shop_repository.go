package memory

import (
	"context"
	"strings"

	"github.com/daniel06264831/menuia/internal/core/domain/model/shop"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

// ErrSlugIsTaken matches the conflict the Postgres store reports for a
// duplicate slug.
var ErrSlugIsTaken = errs.NewConflictError("slug", "slug is already taken")

// ShopRepository implements ports.ShopRepository over a Store.
type ShopRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *ShopRepository) Add(ctx context.Context, aggregate *shop.Shop) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := aggregate.Snapshot()
	if _, ok := r.store.shops[snap.Slug]; ok {
		return ErrSlugIsTaken
	}

	r.store.shops[snap.Slug] = snap
	r.uow.remember(func() {
		delete(r.store.shops, snap.Slug)
	})
	return nil
}

func (r *ShopRepository) Get(ctx context.Context, slug string) (*shop.Shop, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, shop.ErrSlugIsRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	snap, ok := r.store.shops[slug]
	r.store.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("shop", slug)
	}

	return shop.RestoreShop(snap)
}
