package queries

import (
	"context"
	"errors"

	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/shop"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

// DriverView is what a driver learns about themself at login.
type DriverView struct {
	ID       kernel.UUID `json:"id"`
	Name     string      `json:"name"`
	Phone    string      `json:"phone"`
	Vehicle  string      `json:"vehicle"`
	Status   string      `json:"status"`
	Earnings float64     `json:"earnings"`
}

func NewDriverView(d *driver.Driver) DriverView {
	return DriverView{
		ID:       d.ID(),
		Name:     d.Name(),
		Phone:    d.Phone(),
		Vehicle:  d.Vehicle(),
		Status:   d.Presence().String(),
		Earnings: d.Earnings(),
	}
}

type ShopView struct {
	Slug     string     `json:"slug"`
	Name     string     `json:"name"`
	Location *PointView `json:"location,omitempty"`
	Open     string     `json:"open,omitempty"`
	Close    string     `json:"close,omitempty"`
	IsOpen   bool       `json:"isOpen"`
}

func NewShopView(s *shop.Shop) ShopView {
	view := ShopView{
		Slug:   s.Slug(),
		Name:   s.Name(),
		Open:   s.Hours().Open,
		Close:  s.Hours().Close,
		IsOpen: s.IsOpen(),
	}
	if s.Location().IsValid() {
		view.Location = &PointView{Lat: s.Location().Lat(), Lng: s.Location().Lng()}
	}
	return view
}

type AuthenticateDriverQueryHandler struct {
	drivers DriverFinder
}

func NewAuthenticateDriverQueryHandler(drivers DriverFinder) AuthenticateDriverQueryHandler {
	return AuthenticateDriverQueryHandler{drivers: drivers}
}

func (h AuthenticateDriverQueryHandler) Handle(ctx context.Context, query AuthenticateDriverQuery) (DriverView, error) {
	if err := query.Validate(); err != nil {
		return DriverView{}, err
	}

	phone, err := kernel.NewPhone(query.Phone())
	if err != nil {
		return DriverView{}, ErrInvalidCredentials
	}

	d, err := h.drivers.GetByPhone(ctx, phone.String())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return DriverView{}, ErrInvalidCredentials
		}
		return DriverView{}, err
	}
	if !d.CheckPassword(query.Password()) {
		return DriverView{}, ErrInvalidCredentials
	}

	return NewDriverView(d), nil
}

type AuthenticateShopQueryHandler struct {
	shops ShopGetter
}

func NewAuthenticateShopQueryHandler(shops ShopGetter) AuthenticateShopQueryHandler {
	return AuthenticateShopQueryHandler{shops: shops}
}

func (h AuthenticateShopQueryHandler) Handle(ctx context.Context, query AuthenticateShopQuery) (ShopView, error) {
	if err := query.Validate(); err != nil {
		return ShopView{}, err
	}

	s, err := h.shops.Get(ctx, query.Slug())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ShopView{}, ErrInvalidCredentials
		}
		return ShopView{}, err
	}
	if !s.CheckPassword(query.Password()) {
		return ShopView{}, ErrInvalidCredentials
	}

	return NewShopView(s), nil
}
