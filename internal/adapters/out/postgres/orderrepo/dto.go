// Package orderrepo maps order aggregates to the orders table.
package orderrepo

import (
	"encoding/json"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO is the row of an order. Everything decided at placement is
// immutable; the assignment, the two status columns, updated_at and version
// change afterwards.
type OrderDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ShopSlug       string         `gorm:"size:64;not null;index:idx_orders_shop_created,priority:1"`
	ShopName       string         `gorm:"not null"`
	ShopLocation   PointDTO       `gorm:"embedded;embeddedPrefix:shop_"`
	DailyID        int            `gorm:"not null"`
	CustomerName   string         `gorm:"not null"`
	CustomerPhone  string         `gorm:"size:20;not null;index"`
	Address        string         `gorm:"type:text"`
	Note           string         `gorm:"type:text"`
	Items          datatypes.JSON `gorm:"type:jsonb;not null"`
	Costs          CostsDTO       `gorm:"embedded;embeddedPrefix:cost_"`
	Payment        string         `gorm:"size:8;not null"`
	Fulfillment    string         `gorm:"size:10;not null"`
	DriverID       *uuid.UUID     `gorm:"type:uuid;index"`
	DriverName     string         `gorm:"size:120"`
	DriverPhone    string         `gorm:"size:20"`
	Status         string         `gorm:"size:20;not null;index"`
	DeliveryStatus string         `gorm:"size:20;not null"`
	ClaimedAt      *time.Time     `gorm:"index"`
	CreatedAt      time.Time      `gorm:"autoCreateTime:false;index:idx_orders_shop_created,priority:2"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime:false"`
	Version        int            `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// PointDTO stores an optional coordinate as two nullable columns.
type PointDTO struct {
	Lat *float64
	Lng *float64
}

type CostsDTO struct {
	Subtotal float64
	Tip      float64
	Shipping float64
	Service  float64
	Total    float64
}

// itemDTO is one element of the items jsonb array.
type itemDTO struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Note      string  `json:"note,omitempty"`
}

func PointFromDomain(p kernel.GeoPoint) PointDTO {
	if !p.IsValid() {
		return PointDTO{}
	}
	lat, lng := p.Lat(), p.Lng()
	return PointDTO{Lat: &lat, Lng: &lng}
}

// ToDomain returns the zero GeoPoint for missing or unusable coordinates.
func (p PointDTO) ToDomain() kernel.GeoPoint {
	if p.Lat == nil || p.Lng == nil {
		return kernel.GeoPoint{}
	}
	point, err := kernel.NewGeoPoint(*p.Lat, *p.Lng)
	if err != nil {
		return kernel.GeoPoint{}
	}
	return point
}

func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	s := aggregate.Snapshot()

	items := make([]itemDTO, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, itemDTO{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Note:      item.Note,
		})
	}
	rawItems, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	dto := OrderDTO{
		ID:            s.ID.Bytes(),
		ShopSlug:      s.Shop.Slug,
		ShopName:      s.Shop.Name,
		ShopLocation:  PointFromDomain(s.Shop.Location),
		DailyID:       s.DailyID,
		CustomerName:  s.CustomerName,
		CustomerPhone: s.CustomerPhone,
		Address:       s.Address,
		Note:          s.Note,
		Items:         datatypes.JSON(rawItems),
		Costs: CostsDTO{
			Subtotal: s.Costs.Subtotal,
			Tip:      s.Costs.Tip,
			Shipping: s.Costs.Shipping,
			Service:  s.Costs.Service,
			Total:    s.Costs.Total,
		},
		Payment:        string(s.Payment),
		Fulfillment:    string(s.Fulfillment),
		Status:         string(s.Status),
		DeliveryStatus: string(s.DeliveryStatus),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		Version:        s.Version,
	}

	if s.Assignment != nil {
		driverID := s.Assignment.DriverID.Bytes()
		dto.DriverID = &driverID
		dto.DriverName = s.Assignment.DriverName
		dto.DriverPhone = s.Assignment.DriverPhone
	}

	return dto, nil
}

// ToDomain rebuilds the aggregate. It is exported for the read side, which
// scans rows into OrderDTO.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var items []itemDTO
	if err = json.Unmarshal(dto.Items, &items); err != nil {
		return nil, err
	}
	lineItems := make([]order.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, order.LineItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Note:      item.Note,
		})
	}

	var assignment *order.Assignment
	if dto.DriverID != nil {
		driverID, idErr := kernel.UUIDFromBytes(dto.DriverID[:])
		if idErr != nil {
			return nil, idErr
		}
		assignment = &order.Assignment{
			DriverID:    driverID,
			DriverName:  dto.DriverName,
			DriverPhone: dto.DriverPhone,
		}
	}

	return order.RestoreOrder(order.Snapshot{
		ID: id,
		Shop: order.ShopRef{
			Slug:     dto.ShopSlug,
			Name:     dto.ShopName,
			Location: dto.ShopLocation.ToDomain(),
		},
		DailyID:       dto.DailyID,
		CustomerName:  dto.CustomerName,
		CustomerPhone: dto.CustomerPhone,
		Address:       dto.Address,
		Note:          dto.Note,
		Items:         lineItems,
		Costs: order.Costs{
			Subtotal: dto.Costs.Subtotal,
			Tip:      dto.Costs.Tip,
			Shipping: dto.Costs.Shipping,
			Service:  dto.Costs.Service,
			Total:    dto.Costs.Total,
		},
		Payment:        order.PaymentMethod(dto.Payment),
		Fulfillment:    order.Fulfillment(dto.Fulfillment),
		Assignment:     assignment,
		Status:         order.Status(dto.Status),
		DeliveryStatus: order.DeliveryStatus(dto.DeliveryStatus),
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
		Version:        dto.Version,
	})
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
