package shoprepo

import (
	"context"
	"errors"
	"strings"

	"github.com/daniel06264831/menuia/internal/adapters/out/postgres/dberr"
	"github.com/daniel06264831/menuia/internal/core/domain/model/shop"
	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"gorm.io/gorm"
)

var ErrSlugIsTaken = errs.NewConflictError("slug", "slug is already taken")

// GormShopRepository implements ports.ShopRepository using GORM.
type GormShopRepository struct {
	db *gorm.DB
}

func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

func (r *GormShopRepository) Add(ctx context.Context, aggregate *shop.Shop) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlugIsTaken
		}
		return dberr.Wrap("add shop", err)
	}

	return nil
}

func (r *GormShopRepository) Get(ctx context.Context, slug string) (*shop.Shop, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, shop.ErrSlugIsRequired
	}

	var dto ShopDTO
	if err := r.db.WithContext(ctx).First(&dto, "slug = ?", slug).Error; err != nil {
		return nil, dberr.NotFound("get shop", "shop", slug, err)
	}

	return toDomain(dto)
}
