// Package queries contains the read operations of the dispatch system.
// Handlers return read models that serialize directly to JSON for the HTTP
// and socket surfaces.
package queries

import (
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
)

// OrderView is the client-facing shape of an order.
type OrderView struct {
	ID             kernel.UUID     `json:"id"`
	ShopSlug       string          `json:"shopSlug"`
	ShopName       string          `json:"shopName"`
	ShopLocation   *PointView      `json:"shopLocation,omitempty"`
	DailyID        int             `json:"dailyId"`
	CustomerName   string          `json:"customerName"`
	CustomerPhone  string          `json:"customerPhone"`
	Address        string          `json:"address,omitempty"`
	Note           string          `json:"note,omitempty"`
	Items          []LineItemView  `json:"items"`
	Costs          CostsView       `json:"costs"`
	PaymentMethod  string          `json:"paymentMethod"`
	Fulfillment    string          `json:"fulfillment"`
	Driver         *AssignmentView `json:"driver,omitempty"`
	OrderStatus    string          `json:"orderStatus"`
	DeliveryStatus string          `json:"deliveryStatus"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	DistanceKm     *float64        `json:"distanceKm,omitempty"`
}

type PointView struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type LineItemView struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Note      string  `json:"note,omitempty"`
}

type CostsView struct {
	Subtotal float64 `json:"subtotal"`
	Tip      float64 `json:"tip"`
	Shipping float64 `json:"shipping"`
	Service  float64 `json:"service"`
	Total    float64 `json:"total"`
}

type AssignmentView struct {
	DriverID    kernel.UUID `json:"driverId"`
	DriverName  string      `json:"driverName"`
	DriverPhone string      `json:"driverPhone,omitempty"`
}

func NewOrderView(o *order.Order) OrderView {
	s := o.Snapshot()

	items := make([]LineItemView, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, LineItemView{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Note:      item.Note,
		})
	}

	view := OrderView{
		ID:            s.ID,
		ShopSlug:      s.Shop.Slug,
		ShopName:      s.Shop.Name,
		DailyID:       s.DailyID,
		CustomerName:  s.CustomerName,
		CustomerPhone: s.CustomerPhone,
		Address:       s.Address,
		Note:          s.Note,
		Items:         items,
		Costs: CostsView{
			Subtotal: s.Costs.Subtotal,
			Tip:      s.Costs.Tip,
			Shipping: s.Costs.Shipping,
			Service:  s.Costs.Service,
			Total:    s.Costs.Total,
		},
		PaymentMethod:  string(s.Payment),
		Fulfillment:    string(s.Fulfillment),
		OrderStatus:    string(s.Status),
		DeliveryStatus: string(s.DeliveryStatus),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}

	if s.Shop.Location.IsValid() {
		view.ShopLocation = &PointView{Lat: s.Shop.Location.Lat(), Lng: s.Shop.Location.Lng()}
	}
	if s.Assignment != nil {
		view.Driver = &AssignmentView{
			DriverID:    s.Assignment.DriverID,
			DriverName:  s.Assignment.DriverName,
			DriverPhone: s.Assignment.DriverPhone,
		}
	}

	return view
}

// WithDistance returns a copy carrying the driver's distance to the shop.
func (v OrderView) WithDistance(km float64) OrderView {
	v.DistanceKm = &km
	return v
}

func newOrderViews(orders []*order.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views
}
