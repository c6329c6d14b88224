package commands_test

import (
	"testing"

	"github.com/daniel06264831/menuia/internal/core/application/usecases/commands"
	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDriverPresenceCommandHandler_Handle_GoOnline(t *testing.T) {
	tests := []struct {
		name   string
		active []*order.Order
		want   driver.Presence
	}{
		{"idle driver is online", []*order.Order{}, driver.PresenceOnline},
		{"driver with active orders is busy", []*order.Order{newTestOrder(t, order.FulfillmentDelivery)}, driver.PresenceBusy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			f := newFixture(ctx)
			d := newTestDriver(t)

			cmd, err := commands.NewSetDriverPresenceCommand(d.ID(), driver.PresenceOnline)
			require.NoError(t, err)

			f.drivers.On("Get", ctx, d.ID()).Return(d, nil).Once()
			f.orders.On("FindActiveByDriver", ctx, d.ID()).Return(tt.active, nil).Once()
			f.drivers.On("SetPresence", ctx, d.ID(), tt.want).Return(nil).Once()
			f.expectCommit(ctx)

			res, err := commands.NewSetDriverPresenceCommandHandler(f.factory).Handle(ctx, cmd)

			require.NoError(t, err)
			assert.True(t, res.Changed)
			assert.Equal(t, tt.want, res.Driver.Presence())
			assert.Len(t, res.ActiveOrders, len(tt.active))
			f.assert(t)
		})
	}
}

func TestSetDriverPresenceCommandHandler_Handle_SwapKeepsBusyDriver(t *testing.T) {
	ctx := t.Context()
	f := newFixture(ctx)
	d := newTestDriver(t)
	require.NoError(t, d.SetPresence(driver.PresenceBusy))

	cmd, err := commands.NewSwapDriverPresenceCommand(d.ID(), driver.PresenceOnline, driver.PresenceOffline)
	require.NoError(t, err)

	f.drivers.On("Get", ctx, d.ID()).Return(d, nil).Once()
	f.orders.On("FindActiveByDriver", ctx, d.ID()).Return([]*order.Order{newTestOrder(t, order.FulfillmentDelivery)}, nil).Once()
	f.drivers.On("SwapPresence", ctx, d.ID(), driver.PresenceOnline, driver.PresenceOffline).Return(false, nil).Once()
	f.expectCommit(ctx)

	res, err := commands.NewSetDriverPresenceCommandHandler(f.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, driver.PresenceBusy, res.Driver.Presence())
	f.assert(t)
}

func TestNewSetDriverPresenceCommand_RejectsBusy(t *testing.T) {
	_, err := commands.NewSetDriverPresenceCommand(kernel.NewUUID(), driver.PresenceBusy)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestUpdateDriverLocationCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newFixture(ctx)
	d := newTestDriver(t)
	carried := claimedOrder(t, d)

	cmd, err := commands.NewUpdateDriverLocationCommand(d.ID(), 20.01, -100.0, now)
	require.NoError(t, err)

	f.drivers.On("UpdateLocation", ctx, d.ID(), kernel.MustNewGeoPoint(20.01, -100.0), now).Return(nil).Once()
	f.orders.On("FindActiveByDriver", ctx, d.ID()).Return([]*order.Order{carried}, nil).Once()
	f.expectCommit(ctx)

	active, err := commands.NewUpdateDriverLocationCommandHandler(f.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.True(t, active[0].IsEqual(carried))
	f.assert(t)
}

func TestNewUpdateDriverLocationCommand_RejectsMissingFix(t *testing.T) {
	_, err := commands.NewUpdateDriverLocationCommand(kernel.NewUUID(), 0, 0, now)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewUpdateDriverLocationCommand(kernel.NewUUID(), 91, 0, now)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
