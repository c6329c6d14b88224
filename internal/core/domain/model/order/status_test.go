package order_test

import (
	"testing"

	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.StatusPending.IsTerminal())
	assert.False(t, order.StatusDriverAssigned.IsTerminal())
	assert.True(t, order.StatusCompleted.IsTerminal())
	assert.True(t, order.StatusCancelled.IsTerminal())

	require.ErrorIs(t, order.Status("lost").Validate(), errs.ErrValueIsInvalid)
}

func TestDeliveryStatus_Advance(t *testing.T) {
	tests := []struct {
		from, step order.DeliveryStatus
		ok         bool
	}{
		{order.DeliveryToStore, order.DeliveryAtStore, true},
		{order.DeliveryToStore, order.DeliveryDelivered, true},
		{order.DeliveryAtStore, order.DeliveryOnWay, true},
		{order.DeliveryOnWay, order.DeliveryDelivered, true},
		{order.DeliveryOnWay, order.DeliveryAtStore, false},
		{order.DeliveryAtStore, order.DeliveryAtStore, false},
		{order.DeliveryPendingAssignment, order.DeliveryAtStore, false},
		{order.DeliveryDelivered, order.DeliveryDelivered, false},
		{order.DeliveryToStore, order.DeliveryRejected, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.step), func(t *testing.T) {
			next, err := tt.from.Advance(tt.step)
			if !tt.ok {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.step, next)
		})
	}
}

func TestValidateCombination(t *testing.T) {
	require.NoError(t, order.ValidateCombination(order.StatusPending, order.DeliveryPendingAssignment, false))
	require.NoError(t, order.ValidateCombination(order.StatusPending, order.DeliveryNone, false))
	require.NoError(t, order.ValidateCombination(order.StatusDriverAssigned, order.DeliveryOnWay, true))
	require.NoError(t, order.ValidateCombination(order.StatusCompleted, order.DeliveryDelivered, true))
	require.NoError(t, order.ValidateCombination(order.StatusCompleted, order.DeliveryNone, false))
	require.NoError(t, order.ValidateCombination(order.StatusCancelled, order.DeliveryRejected, true))

	require.Error(t, order.ValidateCombination(order.StatusPending, order.DeliveryToStore, true))
	require.Error(t, order.ValidateCombination(order.StatusDriverAssigned, order.DeliveryToStore, false))
	require.Error(t, order.ValidateCombination(order.StatusCancelled, order.DeliveryDelivered, true))
}

func TestParsePaymentMethod(t *testing.T) {
	for raw, want := range map[string]order.PaymentMethod{
		"cash": order.PaymentCash, "Efectivo": order.PaymentCash, " CARD ": order.PaymentCard, "tarjeta": order.PaymentCard,
	} {
		got, err := order.ParsePaymentMethod(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := order.ParsePaymentMethod("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	_, err = order.ParsePaymentMethod("cheque")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCosts_WithDefaults(t *testing.T) {
	items := []order.LineItem{{Name: "Torta", Quantity: 2, UnitPrice: 45}, {Name: "Agua", Quantity: 1, UnitPrice: 20}}

	delivery := order.Costs{Tip: 10}.WithDefaults(items, order.FulfillmentDelivery, 35)
	assert.Equal(t, order.Costs{Subtotal: 110, Tip: 10, Shipping: 35, Total: 155}, delivery)

	pickup := order.Costs{}.WithDefaults(items, order.FulfillmentPickup, 35)
	assert.Equal(t, order.Costs{Subtotal: 110, Total: 110}, pickup)

	explicit := order.Costs{Subtotal: 100, Shipping: 40, Total: 140}.WithDefaults(items, order.FulfillmentDelivery, 35)
	assert.Equal(t, order.Costs{Subtotal: 100, Shipping: 40, Total: 140}, explicit)
}
