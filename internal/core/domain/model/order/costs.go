package order

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

const defaultCustomerName = "Cliente"

// LineItem is one ordered product as priced at placement.
type LineItem struct {
	Name      string
	Quantity  int
	UnitPrice float64
	Note      string
}

func (i LineItem) Validate() error {
	var errList []error
	if strings.TrimSpace(i.Name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("item name"))
	}
	if i.Quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("item quantity", fmt.Errorf("%d is not greater than 0", i.Quantity)))
	}
	if i.UnitPrice < 0 || math.IsNaN(i.UnitPrice) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("item price", fmt.Errorf("%v is negative", i.UnitPrice)))
	}
	return errors.Join(errList...)
}

func (i LineItem) Amount() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// Costs is the price breakdown shown on the ticket.
type Costs struct {
	Subtotal float64
	Tip      float64
	Shipping float64
	Service  float64
	Total    float64
}

func (c Costs) Validate() error {
	for name, v := range map[string]float64{
		"subtotal": c.Subtotal, "tip": c.Tip, "shipping": c.Shipping, "service": c.Service, "total": c.Total,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.NewValueIsInvalidErrorWithCause("costs", fmt.Errorf("%s %v is not a valid amount", name, v))
		}
	}
	return nil
}

// IsZero reports whether the client sent no breakdown at all.
func (c Costs) IsZero() bool {
	return c == Costs{}
}

// WithDefaults fills what the client left out: the subtotal from the items,
// shipping for delivery orders and the total from its parts.
func (c Costs) WithDefaults(items []LineItem, fulfillment Fulfillment, defaultShipping float64) Costs {
	if c.Subtotal == 0 {
		for _, item := range items {
			c.Subtotal += item.Amount()
		}
	}
	if c.Shipping == 0 && fulfillment == FulfillmentDelivery {
		c.Shipping = defaultShipping
	}
	if fulfillment == FulfillmentPickup {
		c.Shipping = 0
	}
	if c.Total == 0 {
		c.Total = c.Subtotal + c.Tip + c.Shipping + c.Service
	}
	return c
}

// Customer identifies who ordered and where the order goes.
type Customer struct {
	name    string
	phone   string
	address string
	note    string
}

// NewCustomer validates the phone, which keys the per-customer payment rule.
// An empty name becomes "Cliente".
func NewCustomer(name, phone, address, note string) (Customer, error) {
	normalized, err := normalizePhone(phone)
	if err != nil {
		return Customer{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultCustomerName
	}

	return Customer{
		name:    name,
		phone:   normalized,
		address: strings.TrimSpace(address),
		note:    strings.TrimSpace(note),
	}, nil
}

func (c Customer) Name() string { return c.name }
func (c Customer) Phone() string { return c.phone }
func (c Customer) Address() string { return c.address }
func (c Customer) Note() string { return c.note }
