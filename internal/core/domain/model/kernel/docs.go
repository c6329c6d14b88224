// Package kernel provides the shared value objects of the dispatch domain.
//
// The package includes:
//   - UUID: identifier of orders and drivers
//   - GeoPoint: a validated latitude/longitude pair
//   - Distance: great-circle distance between two GeoPoints in kilometers
//   - Phone: a contact number normalized to its digits
//
// All values are immutable and safe for concurrent use. Zero values are
// "not constructed" and fail their Validate or IsValid checks, which lets
// optional fields (an absent shop coordinate, an unknown driver location) be
// represented without pointers.
package kernel
