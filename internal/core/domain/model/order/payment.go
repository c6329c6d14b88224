package order

import (
	"fmt"
	"strings"

	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

// PaymentMethod decides which per-customer active-order slot an order uses.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// ParsePaymentMethod accepts the canonical names and the labels the shop
// front-ends send ("Efectivo", "Tarjeta").
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cash", "efectivo":
		return PaymentCash, nil
	case "card", "tarjeta":
		return PaymentCard, nil
	case "":
		return "", errs.NewValueIsRequiredError("paymentMethod")
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not supported", raw))
	}
}

func (p PaymentMethod) Validate() error {
	if p != PaymentCash && p != PaymentCard {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not supported", string(p)))
	}
	return nil
}

// Fulfillment says whether a driver carries the order or the customer collects it.
type Fulfillment string

const (
	FulfillmentDelivery Fulfillment = "delivery"
	FulfillmentPickup   Fulfillment = "pickup"
)

func ParseFulfillment(raw string) (Fulfillment, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "delivery", "domicilio":
		return FulfillmentDelivery, nil
	case "pickup", "recoger":
		return FulfillmentPickup, nil
	case "":
		return "", errs.NewValueIsRequiredError("type")
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not supported", raw))
	}
}

func (f Fulfillment) Validate() error {
	if f != FulfillmentDelivery && f != FulfillmentPickup {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not supported", string(f)))
	}
	return nil
}
