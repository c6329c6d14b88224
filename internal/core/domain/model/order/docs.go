// Package order provides the Order aggregate and its delivery state machine.
//
// The package includes:
//   - Order: the aggregate root, from placement through claim, pickup, transit
//     and completion or cancellation
//   - Status and DeliveryStatus: the business state and the logistics sub-state
//   - PaymentMethod and Fulfillment: commercial classification
//   - Customer, LineItem and Costs: value objects captured at placement
//
// Key business rules:
//   - an order's driver is set by exactly one successful Claim and never changes
//   - only the assigned driver advances an order, and steps only move forward
//   - completed and cancelled orders are terminal and are never deleted
//   - the shop coordinate is copied at placement and is immutable afterwards
package order
