package commands_test

import (
	"testing"

	"github.com/daniel06264831/menuia/internal/core/application/usecases/commands"
	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_ReleasesDriver(t *testing.T) {
	ctx := t.Context()
	f := newFixture(ctx)
	d := newTestDriver(t)
	o := claimedOrder(t, d)

	cmd, err := commands.NewCancelOrderCommand(o.ID(), "tacos", now)
	require.NoError(t, err)

	f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.orders.On("Update", ctx, o).Return(nil).Once()
	f.orders.On("FindActiveByDriver", ctx, d.ID()).Return([]*order.Order{}, nil).Once()
	f.drivers.On("SwapPresence", ctx, d.ID(), driver.PresenceBusy, driver.PresenceOnline).Return(true, nil).Once()
	f.expectCommit(ctx)

	got, err := commands.NewCancelOrderCommandHandler(f.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, got.Status())
	assert.Equal(t, order.DeliveryRejected, got.DeliveryStatus())
	f.assert(t)
}

func TestCancelOrderCommandHandler_Handle_PendingOrder(t *testing.T) {
	ctx := t.Context()
	f := newFixture(ctx)
	o := newTestOrder(t, order.FulfillmentDelivery)

	cmd, err := commands.NewCancelOrderCommand(o.ID(), "", now)
	require.NoError(t, err)

	f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.orders.On("Update", ctx, o).Return(nil).Once()
	f.expectCommit(ctx)

	_, err = commands.NewCancelOrderCommandHandler(f.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	f.drivers.AssertNotCalled(t, "SwapPresence", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_OtherShop(t *testing.T) {
	ctx := t.Context()
	f := newFixture(ctx)
	o := newTestOrder(t, order.FulfillmentDelivery)

	cmd, err := commands.NewCancelOrderCommand(o.ID(), "burgers", now)
	require.NoError(t, err)

	f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()

	_, err = commands.NewCancelOrderCommandHandler(f.factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, order.StatusPending, o.Status())
}

func TestCancelOrderCommandHandler_Handle_Finished(t *testing.T) {
	ctx := t.Context()
	f := newFixture(ctx)
	o := newTestOrder(t, order.FulfillmentPickup)
	require.NoError(t, o.CompletePickup(now))

	cmd, err := commands.NewCancelOrderCommand(o.ID(), "tacos", now)
	require.NoError(t, err)

	f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()

	_, err = commands.NewCancelOrderCommandHandler(f.factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrOrderIsFinished)
}

func TestCompletePickupOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newFixture(ctx)
	o := newTestOrder(t, order.FulfillmentPickup)

	cmd, err := commands.NewCompletePickupOrderCommand(o.ID(), "Tacos", now)
	require.NoError(t, err)

	f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.orders.On("Update", ctx, o).Return(nil).Once()
	f.expectCommit(ctx)

	got, err := commands.NewCompletePickupOrderCommandHandler(f.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusCompleted, got.Status())
	assert.Equal(t, order.DeliveryNone, got.DeliveryStatus())
	f.assert(t)
}
