package commands

import (
	"errors"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/shop"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
)

var ErrRegisterShopCommandIsNotConstructed = errors.New(
	"RegisterShopCommand must be created via NewRegisterShopCommand constructor",
)

// RegisterShopCommand creates a shop. location may be the zero GeoPoint.
type RegisterShopCommand struct { //nolint:recvcheck //using for validation
	slug         string
	name         string
	password     string
	location     kernel.GeoPoint
	hours        shop.Hours
	registeredAt time.Time

	guard guard.ConstructorGuard
}

func NewRegisterShopCommand(
	slug, name, password string,
	location kernel.GeoPoint,
	hours shop.Hours,
	registeredAt time.Time,
) (RegisterShopCommand, error) {
	if password == "" {
		return RegisterShopCommand{}, errs.NewValueIsRequiredError("password")
	}

	return RegisterShopCommand{
		slug:         slug,
		name:         name,
		password:     password,
		location:     location,
		hours:        hours,
		registeredAt: registeredAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterShopCommand) Validate() error {
	return c.guard.Validate(ErrRegisterShopCommandIsNotConstructed)
}

func (c RegisterShopCommand) Slug() string {
	return c.slug
}

func (c RegisterShopCommand) Name() string {
	return c.name
}

func (c RegisterShopCommand) Password() string {
	return c.password
}

func (c RegisterShopCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c RegisterShopCommand) Hours() shop.Hours {
	return c.hours
}

func (c RegisterShopCommand) RegisteredAt() time.Time {
	return c.registeredAt
}
