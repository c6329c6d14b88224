package order

import (
	"fmt"

	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

// Status is the business state of an order.
//
//	Pending ──> DriverAssigned ──> Completed
//	   │  │            │
//	   │  └────────────┼─────────> Completed   (pickup orders, by the shop)
//	   └───────────────┴─────────> Cancelled
type Status string

const (
	StatusPending        Status = "pending"
	StatusDriverAssigned Status = "driver_assigned"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
)

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusDriverAssigned, StatusCompleted, StatusCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// DeliveryStatus is the logistics sub-state of an order.
//
//	PendingAssignment ──> ToStore ──> AtStore ──> OnWay ──> Delivered
//	        │                └──────────┴──────────┴──> Rejected
//	        └─────────────────────────────────────────> Rejected
//
// Pickup orders stay in None until they complete or are rejected.
type DeliveryStatus string

const (
	DeliveryNone              DeliveryStatus = "none"
	DeliveryPendingAssignment DeliveryStatus = "pending_assignment"
	DeliveryToStore           DeliveryStatus = "to_store"
	DeliveryAtStore           DeliveryStatus = "at_store"
	DeliveryOnWay             DeliveryStatus = "on_way"
	DeliveryDelivered         DeliveryStatus = "delivered"
	DeliveryRejected          DeliveryStatus = "rejected"
)

// progress orders the steps a driver walks through. Advance only moves forward.
var progress = map[DeliveryStatus]int{
	DeliveryToStore:   1,
	DeliveryAtStore:   2,
	DeliveryOnWay:     3,
	DeliveryDelivered: 4,
}

func (d DeliveryStatus) Validate() error {
	switch d {
	case DeliveryNone, DeliveryPendingAssignment, DeliveryToStore, DeliveryAtStore,
		DeliveryOnWay, DeliveryDelivered, DeliveryRejected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery status is invalid",
			fmt.Errorf("%q is not a valid delivery status", string(d)),
		)
	}
}

func (d DeliveryStatus) String() string {
	return string(d)
}

// IsDriverStep reports whether a driver may report d via Advance.
func (d DeliveryStatus) IsDriverStep() bool {
	return d == DeliveryAtStore || d == DeliveryOnWay || d == DeliveryDelivered
}

// Advance returns step if it is a driver step strictly after d.
func (d DeliveryStatus) Advance(step DeliveryStatus) (DeliveryStatus, error) {
	if !step.IsDriverStep() {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"step is invalid",
			fmt.Errorf("%q is not a driver step", string(step)),
		)
	}

	current, ok := progress[d]
	if !ok {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"delivery status is invalid",
			fmt.Errorf("%q cannot be advanced", string(d)),
		)
	}

	if progress[step] <= current {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"step is invalid",
			fmt.Errorf("%q does not come after %q", string(step), string(d)),
		)
	}

	return step, nil
}

// ValidateCombination checks that a persisted pair of states is reachable.
func ValidateCombination(s Status, d DeliveryStatus, hasDriver bool) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}

	valid := false
	switch s {
	case StatusPending:
		valid = !hasDriver && (d == DeliveryPendingAssignment || d == DeliveryNone)
	case StatusDriverAssigned:
		valid = hasDriver && (d == DeliveryToStore || d == DeliveryAtStore || d == DeliveryOnWay)
	case StatusCompleted:
		valid = (hasDriver && d == DeliveryDelivered) || (!hasDriver && d == DeliveryNone)
	case StatusCancelled:
		valid = d == DeliveryRejected
	}

	if !valid {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s/%s with driver=%t is not a reachable state", s, d, hasDriver),
		)
	}

	return nil
}
