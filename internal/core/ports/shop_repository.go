package ports

import (
	"context"

	"github.com/daniel06264831/menuia/internal/core/domain/model/shop"
)

// ShopRepository defines the persistence contract for shops.
type ShopRepository interface {
	// Add persists a new shop. A taken slug is an errs.ConflictError.
	Add(ctx context.Context, aggregate *shop.Shop) error

	// Get returns errs.ObjectNotFoundError for unknown slugs.
	Get(ctx context.Context, slug string) (*shop.Shop, error)
}
