// Package services provides domain services that work across aggregates.
//
// The package includes:
//   - DispatchScorer: ranks drivers for an order by distance, batching
//     affinity and a small equity jitter
//   - ScoringPolicy: the tunable constants of that ranking
package services
