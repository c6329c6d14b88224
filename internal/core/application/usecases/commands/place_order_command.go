package commands

import (
	"errors"
	"strings"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand is a customer's order for a shop, as received from the
// shop front-end.
//
// Example:
//
//	customer, _ := order.NewCustomer("Ana", "4431234567", "Av. Madero 100", "")
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), "tacos-el-guero", customer,
//	    items, order.Costs{Tip: 10}, order.PaymentCash, order.FulfillmentDelivery, time.Now())
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	shopSlug    string
	customer    order.Customer
	items       []order.LineItem
	costs       order.Costs
	payment     order.PaymentMethod
	fulfillment order.Fulfillment
	placedAt    time.Time

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(
	orderID kernel.UUID,
	shopSlug string,
	customer order.Customer,
	items []order.LineItem,
	costs order.Costs,
	payment order.PaymentMethod,
	fulfillment order.Fulfillment,
	placedAt time.Time,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		customer: customer,
		costs:    costs,
		placedAt: placedAt,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setShopSlug(shopSlug),
		cmd.setItems(items),
		payment.Validate(),
		fulfillment.Validate(),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	cmd.payment = payment
	cmd.fulfillment = fulfillment
	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c PlaceOrderCommand) ShopSlug() string { return c.shopSlug }
func (c PlaceOrderCommand) Customer() order.Customer { return c.customer }
func (c PlaceOrderCommand) Items() []order.LineItem { return c.items }
func (c PlaceOrderCommand) Costs() order.Costs { return c.costs }
func (c PlaceOrderCommand) Payment() order.PaymentMethod { return c.payment }
func (c PlaceOrderCommand) Fulfillment() order.Fulfillment { return c.fulfillment }
func (c PlaceOrderCommand) PlacedAt() time.Time { return c.placedAt }

func (c *PlaceOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *PlaceOrderCommand) setShopSlug(slug string) error {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return errs.NewValueIsRequiredError("shopSlug")
	}
	c.shopSlug = slug
	return nil
}

func (c *PlaceOrderCommand) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = make([]order.LineItem, len(items))
	copy(c.items, items)
	return nil
}
