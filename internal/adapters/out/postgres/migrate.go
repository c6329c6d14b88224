package postgres

import (
	"github.com/daniel06264831/menuia/internal/adapters/out/postgres/driverrepo"
	"github.com/daniel06264831/menuia/internal/adapters/out/postgres/orderrepo"
	"github.com/daniel06264831/menuia/internal/adapters/out/postgres/shoprepo"

	"gorm.io/gorm"
)

// Migrate creates or extends the orders, drivers and shops tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&shoprepo.ShopDTO{},
		&driverrepo.DriverDTO{},
		&orderrepo.OrderDTO{},
	)
}
