package http

import (
	"github.com/daniel06264831/menuia/internal/core/application/dispatch"
	"github.com/daniel06264831/menuia/internal/core/application/usecases/queries"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
)

type RegisterShopRequest struct {
	Slug     string   `json:"slug"`
	Name     string   `json:"name"`
	Password string   `json:"password"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	Open     string   `json:"open,omitempty"`
	Close    string   `json:"close,omitempty"`
}

type RegisterShopResponse struct {
	Success bool             `json:"success"`
	Shop    queries.ShopView `json:"shop"`
}

type PlaceOrderRequest struct {
	Slug  string                `json:"slug"`
	Order dispatch.OrderRequest `json:"order"`
}

type PlaceOrderResponse struct {
	Success bool        `json:"success"`
	OrderID kernel.UUID `json:"orderId"`
}

// ShopCredentials authenticate every shop-scoped call.
type ShopCredentials struct {
	Slug     string `json:"slug"`
	Password string `json:"password"`
}

type ListOrdersRequest struct {
	ShopCredentials
	Limit     int    `json:"limit,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

type OrderStatusRequest struct {
	ShopCredentials
	OrderID string `json:"orderId"`
}

type UpdateOrderStatusRequest struct {
	ShopCredentials
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type OrdersResponse struct {
	Success bool                `json:"success"`
	Orders  []queries.OrderView `json:"orders"`
}

type OrderResponse struct {
	Success bool              `json:"success"`
	Order   queries.OrderView `json:"order"`
}

type RegisterDriverRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Vehicle  string `json:"vehicle,omitempty"`
}

type DriverLoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type DriverResponse struct {
	Success bool               `json:"success"`
	Driver  queries.DriverView `json:"driver"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
