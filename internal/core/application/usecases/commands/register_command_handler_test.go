package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/daniel06264831/menuia/internal/core/application/usecases/commands"
	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/shop"
	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func driverUoW(ctx context.Context, drivers *MockDriverRepository) (*MockUoW, *MockDriverUoWFactory) {
	uow := new(MockUoW)
	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(drivers).Maybe()
	uow.On("Rollback", ctx).Return(nil).Maybe()
	return uow, factory
}

func TestRegisterDriverCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	drivers := new(MockDriverRepository)
	uow, factory := driverUoW(ctx, drivers)

	cmd, err := commands.NewRegisterDriverCommand(kernel.NewUUID(), "Luis", "443 555 0101", "1234", "", now)
	require.NoError(t, err)

	drivers.On("GetByPhone", ctx, "4435550101").Return(nil, errs.NewObjectNotFoundError("driver", "4435550101")).Once()
	drivers.On("Add", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	d, err := commands.NewRegisterDriverCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, driver.PresenceOffline, d.Presence())
	assert.Equal(t, driver.DefaultVehicle, d.Vehicle())
	assert.True(t, d.CheckPassword("1234"))
	drivers.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRegisterDriverCommandHandler_Handle_DuplicatePhone(t *testing.T) {
	ctx := t.Context()
	drivers := new(MockDriverRepository)
	_, factory := driverUoW(ctx, drivers)

	cmd, err := commands.NewRegisterDriverCommand(kernel.NewUUID(), "Pedro", "4435550101", "1234", "Bici", now)
	require.NoError(t, err)

	drivers.On("GetByPhone", ctx, "4435550101").Return(newTestDriver(t), nil).Once()

	_, err = commands.NewRegisterDriverCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrPhoneIsAlreadyRegistered)
	drivers.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestNewRegisterDriverCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewRegisterDriverCommand(kernel.NewUUID(), "", "", "", "", now)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "phone")
	assert.Contains(t, err.Error(), "password")
}

func TestRegisterShopCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	shops := new(MockShopRepository)
	uow := new(MockUoW)
	factory := new(MockShopUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShopRepository").Return(shops).Once()
	uow.On("Rollback", ctx).Return(nil).Maybe()

	cmd, err := commands.NewRegisterShopCommand("Tacos", "Tacos", "secret", kernel.GeoPoint{}, shop.Hours{}, time.Now())
	require.NoError(t, err)

	shops.On("Get", ctx, "tacos").Return(newTestShop(t), nil).Once()

	_, err = commands.NewRegisterShopCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrSlugIsTaken)
	shops.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}
