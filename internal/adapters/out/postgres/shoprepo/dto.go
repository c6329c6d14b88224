// Package shoprepo maps shop aggregates to the shops table.
package shoprepo

import (
	"time"

	"github.com/daniel06264831/menuia/internal/adapters/out/postgres/orderrepo"
	"github.com/daniel06264831/menuia/internal/core/domain/model/shop"
)

type ShopDTO struct {
	Slug         string             `gorm:"size:64;primaryKey"`
	Name         string             `gorm:"not null"`
	PasswordHash string             `gorm:"not null"`
	Location     orderrepo.PointDTO `gorm:"embedded;embeddedPrefix:location_"`
	OpensAt      string             `gorm:"size:5"`
	ClosesAt     string             `gorm:"size:5"`
	IsOpen       bool               `gorm:"not null"`
	CreatedAt    time.Time          `gorm:"autoCreateTime:false"`
}

func (ShopDTO) TableName() string {
	return "shops"
}

func fromDomain(aggregate *shop.Shop) ShopDTO {
	s := aggregate.Snapshot()
	return ShopDTO{
		Slug:         s.Slug,
		Name:         s.Name,
		PasswordHash: s.PasswordHash,
		Location:     orderrepo.PointFromDomain(s.Location),
		OpensAt:      s.Hours.Open,
		ClosesAt:     s.Hours.Close,
		IsOpen:       s.IsOpen,
		CreatedAt:    s.CreatedAt,
	}
}

func toDomain(dto ShopDTO) (*shop.Shop, error) {
	return shop.RestoreShop(shop.Snapshot{
		Slug:         dto.Slug,
		Name:         dto.Name,
		PasswordHash: dto.PasswordHash,
		Location:     dto.Location.ToDomain(),
		Hours:        shop.Hours{Open: dto.OpensAt, Close: dto.ClosesAt},
		IsOpen:       dto.IsOpen,
		CreatedAt:    dto.CreatedAt,
	})
}
