package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/daniel06264831/menuia/internal/core/application/usecases/commands"
	"github.com/daniel06264831/menuia/internal/core/application/usecases/queries"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/core/ports"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

// Shop-side status values accepted by UpdateShopOrderStatus.
const (
	ShopStatusCancelled = "cancelled"
	ShopStatusRejected  = "rejected"
	ShopStatusCompleted = "completed"
)

// AcceptOrder claims the order for the driver. The winner gets the order,
// the shop learns who carries it and every other online driver sees the
// offer withdrawn. A driver that lost the race is told the order is taken.
func (c *Coordinator) AcceptOrder(ctx context.Context, conn ports.ConnectionID, driverID, orderID kernel.UUID) (queries.OrderView, error) {
	cmd, err := commands.NewClaimOrderCommand(orderID, driverID, c.now())
	if err != nil {
		return queries.OrderView{}, err
	}

	res, err := c.claimOrder.Handle(ctx, cmd)
	if err != nil {
		if errors.Is(err, order.ErrOrderAlreadyTaken) {
			c.publish(ctx, ports.Event{
				Channel: ports.DriverChannel(driverID),
				Name:    ports.EventOrderTaken,
				Payload: OrderNotice{OrderID: orderID, Message: MessageOrderTaken},
			})
		}
		return queries.OrderView{}, err
	}

	o := res.Order
	view := queries.NewOrderView(o)
	shopChannel := ports.ShopChannel(o.ShopSlug())

	c.publish(ctx, ports.Event{Channel: ports.DriverChannel(driverID), Name: ports.EventOrderAccepted, Payload: view})
	c.publish(ctx, ports.Event{
		Channel: ports.BroadcastChannel,
		Name:    ports.EventOrderTaken,
		Payload: OrderNotice{OrderID: o.ID(), Message: MessageOrderTaken},
		Except:  conn,
	})
	c.publish(ctx, ports.Event{Channel: shopChannel, Name: ports.EventOrderUpdate, Payload: view})
	c.publish(ctx, ports.Event{
		Channel: shopChannel,
		Name:    ports.EventDriverAssigned,
		Payload: DriverAssigned{OrderID: o.ID(), DriverName: res.Driver.Name()},
	})

	c.logger.InfoContext(ctx, "Order accepted", "orderId", o.ID().String(), "driverId", driverID.String())
	return view, nil
}

// AdvanceOrder moves the driver's order one or more steps forward.
func (c *Coordinator) AdvanceOrder(
	ctx context.Context,
	driverID, orderID kernel.UUID,
	step order.DeliveryStatus,
) (queries.OrderView, error) {
	cmd, err := commands.NewAdvanceOrderCommand(orderID, driverID, step, c.now())
	if err != nil {
		return queries.OrderView{}, err
	}

	o, err := c.advanceOrder.Handle(ctx, cmd)
	if err != nil {
		return queries.OrderView{}, err
	}

	view := queries.NewOrderView(o)
	c.publish(ctx, ports.Event{Channel: ports.DriverChannel(driverID), Name: ports.EventOrderStepUpdated, Payload: view})
	c.publish(ctx, ports.Event{Channel: ports.ShopChannel(o.ShopSlug()), Name: ports.EventOrderUpdate, Payload: view})

	c.logger.InfoContext(ctx, "Order advanced",
		"orderId", o.ID().String(), "driverId", driverID.String(), "step", o.DeliveryStatus().String())
	return view, nil
}

// CancelOrder rejects an order on behalf of its shop. The assigned driver,
// or every online driver while the order was still on offer, is told.
func (c *Coordinator) CancelOrder(ctx context.Context, shopSlug string, orderID kernel.UUID) (queries.OrderView, error) {
	cmd, err := commands.NewCancelOrderCommand(orderID, shopSlug, c.now())
	if err != nil {
		return queries.OrderView{}, err
	}

	o, err := c.cancelOrder.Handle(ctx, cmd)
	if err != nil {
		return queries.OrderView{}, err
	}

	view := queries.NewOrderView(o)
	c.publish(ctx, ports.Event{Channel: ports.ShopChannel(o.ShopSlug()), Name: ports.EventOrderStatusUpdated, Payload: view})

	notice := OrderNotice{OrderID: o.ID(), Message: MessageOrderCancelled}
	switch {
	case o.DriverID() != nil:
		c.publish(ctx, ports.Event{Channel: ports.DriverChannel(*o.DriverID()), Name: ports.EventOrderCancelled, Payload: notice})
	case o.Fulfillment() == order.FulfillmentDelivery:
		c.publish(ctx, ports.Event{Channel: ports.BroadcastChannel, Name: ports.EventOrderCancelled, Payload: notice})
	}

	c.logger.InfoContext(ctx, "Order cancelled", "orderId", o.ID().String(), "shop", o.ShopSlug())
	return view, nil
}

// CompletePickup closes a pickup order once the customer collected it.
func (c *Coordinator) CompletePickup(ctx context.Context, shopSlug string, orderID kernel.UUID) (queries.OrderView, error) {
	cmd, err := commands.NewCompletePickupOrderCommand(orderID, shopSlug, c.now())
	if err != nil {
		return queries.OrderView{}, err
	}

	o, err := c.completePickup.Handle(ctx, cmd)
	if err != nil {
		return queries.OrderView{}, err
	}

	view := queries.NewOrderView(o)
	c.publish(ctx, ports.Event{Channel: ports.ShopChannel(o.ShopSlug()), Name: ports.EventOrderStatusUpdated, Payload: view})
	return view, nil
}

// UpdateShopOrderStatus applies a status chosen in the shop dashboard:
// cancelled (or rejected) and completed.
func (c *Coordinator) UpdateShopOrderStatus(
	ctx context.Context,
	shopSlug string,
	orderID kernel.UUID,
	status string,
) (queries.OrderView, error) {
	switch status {
	case ShopStatusCancelled, ShopStatusRejected:
		return c.CancelOrder(ctx, shopSlug, orderID)
	case ShopStatusCompleted:
		return c.CompletePickup(ctx, shopSlug, orderID)
	default:
		return queries.OrderView{}, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not one of %s, %s", status, ShopStatusCancelled, ShopStatusCompleted))
	}
}
