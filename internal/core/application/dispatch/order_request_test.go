package dispatch_test

import (
	"testing"
	"time"

	"github.com/daniel06264831/menuia/internal/core/application/dispatch"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRequest_ToCommandDefaults(t *testing.T) {
	req := dispatch.OrderRequest{
		CustomerPhone: "+52 443 555 0101",
		Items:         []dispatch.OrderItemRequest{{Name: "Gringa", Quantity: 2, Price: 55}},
		Total:         145,
	}

	cmd, err := req.ToCommand(kernel.NewUUID(), "tacos", time.Now())
	require.NoError(t, err)

	assert.Equal(t, order.PaymentCash, cmd.Payment())
	assert.Equal(t, order.FulfillmentDelivery, cmd.Fulfillment())
	assert.Equal(t, "Cliente", cmd.Customer().Name())
	assert.Equal(t, "524435550101", cmd.Customer().Phone())
	assert.Equal(t, 145.0, cmd.Costs().Total)
	assert.Equal(t, []order.LineItem{{Name: "Gringa", Quantity: 2, UnitPrice: 55}}, cmd.Items())
}

func TestOrderRequest_ToCommandExplicitCosts(t *testing.T) {
	req := dispatch.OrderRequest{
		CustomerPhone: "4435550101",
		Items:         []dispatch.OrderItemRequest{{Name: "Gringa", Quantity: 1, Price: 55}},
		Costs:         &dispatch.CostsRequest{Subtotal: 55, Tip: 10, Shipping: 30, Total: 95},
		PaymentMethod: "Tarjeta",
		Type:          "recoger",
	}

	cmd, err := req.ToCommand(kernel.NewUUID(), "tacos", time.Now())
	require.NoError(t, err)

	assert.Equal(t, order.PaymentCard, cmd.Payment())
	assert.Equal(t, order.FulfillmentPickup, cmd.Fulfillment())
	assert.Equal(t, order.Costs{Subtotal: 55, Tip: 10, Shipping: 30, Total: 95}, cmd.Costs())
}

func TestOrderRequest_ToCommandJoinsErrors(t *testing.T) {
	req := dispatch.OrderRequest{
		CustomerPhone: "",
		PaymentMethod: "bitcoin",
		Type:          "drone",
	}

	_, err := req.ToCommand(kernel.NewUUID(), "tacos", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
