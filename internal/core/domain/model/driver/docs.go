// Package driver provides the Driver aggregate: identity, credentials,
// presence, last known position and accumulated earnings.
//
// A driver's load is not stored here. The number of orders a driver carries
// is derived from the orders table, so presence is the only availability
// signal this package owns.
//
// Key business rules:
//   - a driver has a valid identifier, a name and a unique normalized phone
//   - presence is one of offline, online or busy
//   - only online and busy drivers with a fresh position are dispatch candidates
//   - earnings never decrease
package driver
