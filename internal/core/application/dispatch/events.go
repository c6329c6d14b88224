package dispatch

import (
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
)

// Messages shown to drivers when an offer is withdrawn.
const (
	MessageOrderTaken     = "Order was taken by another driver"
	MessageOrderCancelled = "Order was cancelled by the shop"
)

// OrderNotice withdraws an order from a driver's screen.
type OrderNotice struct {
	OrderID kernel.UUID `json:"orderId"`
	Message string      `json:"message"`
}

type DriverAssigned struct {
	OrderID    kernel.UUID `json:"orderId"`
	DriverName string      `json:"driverName"`
}

type DriverMoved struct {
	OrderID  kernel.UUID `json:"orderId"`
	DriverID kernel.UUID `json:"driverId"`
	Lat      float64     `json:"lat"`
	Lng      float64     `json:"lng"`
}
