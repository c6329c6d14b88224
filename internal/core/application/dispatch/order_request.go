package dispatch

import (
	"errors"
	"time"

	"github.com/daniel06264831/menuia/internal/core/application/usecases/commands"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
)

// OrderRequest is an order as a shop front-end submits it, over HTTP or the
// socket.
type OrderRequest struct {
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
	Address       string             `json:"address"`
	Note          string             `json:"note"`
	Items         []OrderItemRequest `json:"items"`
	Costs         *CostsRequest      `json:"costs,omitempty"`
	Total         float64            `json:"total"`
	PaymentMethod string             `json:"paymentMethod"`
	Type          string             `json:"type"`
}

type OrderItemRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Note     string  `json:"note"`
}

type CostsRequest struct {
	Subtotal float64 `json:"subtotal"`
	Tip      float64 `json:"tip"`
	Shipping float64 `json:"shipping"`
	Service  float64 `json:"service"`
	Total    float64 `json:"total"`
}

// ToCommand validates the request and builds the place-order command. A
// missing payment method means cash and a missing type means delivery.
func (r OrderRequest) ToCommand(orderID kernel.UUID, shopSlug string, placedAt time.Time) (commands.PlaceOrderCommand, error) {
	customer, customerErr := order.NewCustomer(r.CustomerName, r.CustomerPhone, r.Address, r.Note)

	payment := order.PaymentCash
	var paymentErr error
	if r.PaymentMethod != "" {
		payment, paymentErr = order.ParsePaymentMethod(r.PaymentMethod)
	}

	fulfillment := order.FulfillmentDelivery
	var fulfillmentErr error
	if r.Type != "" {
		fulfillment, fulfillmentErr = order.ParseFulfillment(r.Type)
	}

	if err := errors.Join(customerErr, paymentErr, fulfillmentErr); err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	items := make([]order.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, order.LineItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Note:      item.Note,
		})
	}

	var costs order.Costs
	if r.Costs != nil {
		costs = order.Costs{
			Subtotal: r.Costs.Subtotal,
			Tip:      r.Costs.Tip,
			Shipping: r.Costs.Shipping,
			Service:  r.Costs.Service,
			Total:    r.Costs.Total,
		}
	}
	if costs.Total == 0 {
		costs.Total = r.Total
	}

	return commands.NewPlaceOrderCommand(orderID, shopSlug, customer, items, costs, payment, fulfillment, placedAt)
}
