package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderAlreadyTaken is the loser's signal when two drivers claim the same order.
	ErrOrderAlreadyTaken = errs.NewConflictError("order", "order already taken by another driver")

	// ErrOrderIsFinished is returned for any transition attempted on a
	// completed or cancelled order.
	ErrOrderIsFinished = errs.NewConflictError("order", "order is already completed or cancelled")

	// ErrOrderIsAssignedToAnotherDriver is returned when a driver reports a
	// step for an order someone else claimed.
	ErrOrderIsAssignedToAnotherDriver = errs.NewConflictError("order", "order is assigned to another driver")

	ErrOrderIsNotClaimed     = errs.NewValueIsInvalidErrorWithCause("order", errors.New("order has no driver yet"))
	ErrOrderIsNotDeliverable = errs.NewValueIsInvalidErrorWithCause("order", errors.New("pickup orders are not dispatched to drivers"))
	ErrOrderIsNotPickup      = errs.NewValueIsInvalidErrorWithCause("order", errors.New("only pickup orders are completed by the shop"))
)

// ShopRef is the part of a shop copied onto each order at placement.
type ShopRef struct {
	Slug     string
	Name     string
	Location kernel.GeoPoint
}

// Assignment is the driver holding an order.
type Assignment struct {
	DriverID    kernel.UUID
	DriverName  string
	DriverPhone string
}

// Order is the aggregate root of the delivery lifecycle.
//
// Order follows these invariants:
//   - it has a valid identifier, an owning shop and at least one line item
//   - delivery orders have an address
//   - the assignment is nil until one successful Claim and never changes after
//   - Status and DeliveryStatus always form a reachable pair
//   - the shop location is fixed at placement
type Order struct {
	id             kernel.UUID
	shop           ShopRef
	dailyID        int
	customer       Customer
	items          []LineItem
	costs          Costs
	payment        PaymentMethod
	fulfillment    Fulfillment
	assignment     *Assignment
	status         Status
	deliveryStatus DeliveryStatus
	createdAt      time.Time
	updatedAt      time.Time
	version        int

	isConstructed bool
}

// NewOrder places a new order in the Pending state. Delivery orders start in
// PendingAssignment and pickup orders in DeliveryNone.
//
// Example:
//
//	customer, _ := order.NewCustomer("Ana", "4431234567", "Av. Madero 100", "")
//	o, err := order.NewOrder(kernel.NewUUID(), shopRef, customer, items,
//	    costs, order.PaymentCash, order.FulfillmentDelivery, 7, time.Now())
func NewOrder(
	id kernel.UUID,
	shop ShopRef,
	customer Customer,
	items []LineItem,
	costs Costs,
	payment PaymentMethod,
	fulfillment Fulfillment,
	dailyID int,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		createdAt:     createdAt,
		updatedAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setShop(shop),
		o.setFulfillment(fulfillment),
		o.setPayment(payment),
		o.setItems(items),
		o.setCosts(costs),
		o.setDailyID(dailyID),
	); err != nil {
		return nil, err
	}

	if err := o.setCustomer(customer); err != nil {
		return nil, err
	}

	o.deliveryStatus = DeliveryPendingAssignment
	if fulfillment == FulfillmentPickup {
		o.deliveryStatus = DeliveryNone
	}

	return o, nil
}

// Snapshot carries every field of an order between the aggregate and storage.
type Snapshot struct {
	ID             kernel.UUID
	Shop           ShopRef
	DailyID        int
	CustomerName   string
	CustomerPhone  string
	Address        string
	Note           string
	Items          []LineItem
	Costs          Costs
	Payment        PaymentMethod
	Fulfillment    Fulfillment
	Assignment     *Assignment
	Status         Status
	DeliveryStatus DeliveryStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int
}

// RestoreOrder rebuilds an order from storage, validating the persisted state.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		dailyID:        s.DailyID,
		customer:       Customer{name: s.CustomerName, phone: s.CustomerPhone, address: s.Address, note: s.Note},
		assignment:     s.Assignment,
		status:         s.Status,
		deliveryStatus: s.DeliveryStatus,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
		version:        s.Version,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setShop(s.Shop),
		o.setFulfillment(s.Fulfillment),
		o.setPayment(s.Payment),
		o.setItems(s.Items),
		o.setCosts(s.Costs),
		ValidateCombination(s.Status, s.DeliveryStatus, s.Assignment != nil),
	); err != nil {
		return nil, err
	}

	if s.Assignment != nil {
		if err := s.Assignment.DriverID.Validate(); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// Snapshot exports the current state for persistence.
func (o *Order) Snapshot() Snapshot {
	var assignment *Assignment
	if o.assignment != nil {
		a := *o.assignment
		assignment = &a
	}

	return Snapshot{
		ID:             o.id,
		Shop:           o.shop,
		DailyID:        o.dailyID,
		CustomerName:   o.customer.name,
		CustomerPhone:  o.customer.phone,
		Address:        o.customer.address,
		Note:           o.customer.note,
		Items:          o.Items(),
		Costs:          o.costs,
		Payment:        o.payment,
		Fulfillment:    o.fulfillment,
		Assignment:     assignment,
		Status:         o.status,
		DeliveryStatus: o.deliveryStatus,
		CreatedAt:      o.createdAt,
		UpdatedAt:      o.updatedAt,
		Version:        o.version,
	}
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Shop() ShopRef { return o.shop }
func (o *Order) ShopSlug() string { return o.shop.Slug }
func (o *Order) ShopLocation() kernel.GeoPoint { return o.shop.Location }
func (o *Order) DailyID() int { return o.dailyID }
func (o *Order) Customer() Customer { return o.customer }
func (o *Order) Costs() Costs { return o.costs }
func (o *Order) Payment() PaymentMethod { return o.payment }
func (o *Order) Fulfillment() Fulfillment { return o.fulfillment }
func (o *Order) Status() Status { return o.status }
func (o *Order) DeliveryStatus() DeliveryStatus { return o.deliveryStatus }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Version is the optimistic concurrency counter as loaded from storage.
func (o *Order) Version() int { return o.version }

// BumpVersion is called by repositories after a successful write so the
// aggregate can be written again in the same unit of work.
func (o *Order) BumpVersion() {
	o.version++
}

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Assignment returns the driver holding the order, or nil.
func (o *Order) Assignment() *Assignment {
	if o.assignment == nil {
		return nil
	}
	a := *o.assignment
	return &a
}

// DriverID returns the assigned driver's id, or nil.
func (o *Order) DriverID() *kernel.UUID {
	if o.assignment == nil {
		return nil
	}
	id := o.assignment.DriverID
	return &id
}

// IsAssignedTo reports whether driverID holds the order.
func (o *Order) IsAssignedTo(driverID kernel.UUID) bool {
	return o.assignment != nil && o.assignment.DriverID.IsEqual(driverID)
}

// IsTerminal reports whether the order is completed or cancelled.
func (o *Order) IsTerminal() bool {
	return o.status.IsTerminal()
}

// IsAwaitingDriver reports whether the order still waits for a claim. The
// dispatch retry only acts on orders in this state.
func (o *Order) IsAwaitingDriver() bool {
	return o.status == StatusPending && o.deliveryStatus == DeliveryPendingAssignment && o.assignment == nil
}

// Claim makes driver the exclusive assignee of the order.
//
// The check here only rejects claims that are already known to fail. Two
// concurrent claims both pass it, so storage must persist the claim with a
// conditional write that only succeeds while no driver is set.
//
// Returns:
//   - ErrOrderIsNotDeliverable for pickup orders
//   - ErrOrderIsFinished for completed or cancelled orders
//   - ErrOrderAlreadyTaken if a driver already holds the order
func (o *Order) Claim(driver Assignment, at time.Time) error {
	if err := driver.DriverID.Validate(); err != nil {
		return err
	}
	if o.fulfillment != FulfillmentDelivery {
		return ErrOrderIsNotDeliverable
	}
	if o.status.IsTerminal() {
		return ErrOrderIsFinished
	}
	if o.assignment != nil {
		return ErrOrderAlreadyTaken
	}

	o.assignment = &driver
	o.status = StatusDriverAssigned
	o.deliveryStatus = DeliveryToStore
	o.updatedAt = at
	return nil
}

// Advance records the next step reported by the assigned driver. Delivered
// completes the order.
//
// Example:
//
//	if err := o.Advance(driverID, order.DeliveryOnWay, time.Now()); err != nil {
//	    return err
//	}
func (o *Order) Advance(driverID kernel.UUID, step DeliveryStatus, at time.Time) error {
	if o.status.IsTerminal() {
		return ErrOrderIsFinished
	}
	if o.assignment == nil {
		return ErrOrderIsNotClaimed
	}
	if !o.assignment.DriverID.IsEqual(driverID) {
		return ErrOrderIsAssignedToAnotherDriver
	}

	next, err := o.deliveryStatus.Advance(step)
	if err != nil {
		return err
	}

	o.deliveryStatus = next
	if next == DeliveryDelivered {
		o.status = StatusCompleted
	}
	o.updatedAt = at
	return nil
}

// Cancel rejects the order from any non-terminal state. The assignment, if
// any, is kept for history.
func (o *Order) Cancel(at time.Time) error {
	if o.status.IsTerminal() {
		return ErrOrderIsFinished
	}

	o.status = StatusCancelled
	o.deliveryStatus = DeliveryRejected
	o.updatedAt = at
	return nil
}

// CompletePickup marks a pickup order as collected by the customer.
func (o *Order) CompletePickup(at time.Time) error {
	if o.fulfillment != FulfillmentPickup {
		return ErrOrderIsNotPickup
	}
	if o.status.IsTerminal() {
		return ErrOrderIsFinished
	}

	o.status = StatusCompleted
	o.updatedAt = at
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setShop(shop ShopRef) error {
	shop.Slug = strings.TrimSpace(shop.Slug)
	if shop.Slug == "" {
		return errs.NewValueIsRequiredError("shopSlug")
	}
	o.shop = shop
	return nil
}

func (o *Order) setFulfillment(f Fulfillment) error {
	if err := f.Validate(); err != nil {
		return err
	}
	o.fulfillment = f
	return nil
}

func (o *Order) setPayment(p PaymentMethod) error {
	if err := p.Validate(); err != nil {
		return err
	}
	o.payment = p
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var errList []error
	for i, item := range items {
		if err := item.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("item %d: %w", i, err))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setCosts(c Costs) error {
	if err := c.Validate(); err != nil {
		return err
	}
	o.costs = c
	return nil
}

func (o *Order) setDailyID(dailyID int) error {
	if dailyID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("dailyId", fmt.Errorf("%d is not greater than 0", dailyID))
	}
	o.dailyID = dailyID
	return nil
}

// setCustomer runs after setFulfillment: delivery orders need an address.
func (o *Order) setCustomer(c Customer) error {
	if c.phone == "" {
		return errs.NewValueIsRequiredError("customerPhone")
	}
	if o.fulfillment == FulfillmentDelivery && c.address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.customer = c
	return nil
}

func normalizePhone(raw string) (string, error) {
	p, err := kernel.NewPhone(raw)
	if err != nil {
		return "", err
	}
	return p.String(), nil
}
