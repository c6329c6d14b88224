package services

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
)

// Candidate is a driver considered for an order, together with the
// non-terminal orders the driver already carries.
type Candidate struct {
	Driver       *driver.Driver
	ActiveOrders []*order.Order
}

// RankedDriver is a candidate that passed every filter.
type RankedDriver struct {
	Driver     *driver.Driver
	Score      float64
	DistanceKm float64
}

// RankOptions narrows a single ranking. A zero MaxDistanceKm uses the
// policy radius, or the wide radius when ForceWiden is set.
type RankOptions struct {
	MaxDistanceKm float64
	ForceWiden    bool
}

// DispatchScorer ranks drivers for an order.
//
// Scoring:
//   - start from BaseScore and subtract DistancePenaltyPerKm per kilometre
//     between the driver and the order's shop
//   - a driver carrying any order from another shop is excluded; one carrying
//     an order from the same shop gets BatchingBonus
//   - a uniform jitter in [0, JitterRange) spreads offers between drivers at
//     similar distances
//
// Offline drivers, drivers without a fresh position and drivers beyond the
// radius are never ranked.
//
// Example:
//
//	scorer := services.NewDispatchScorer(services.DefaultScoringPolicy())
//	ranked := scorer.Rank(o, candidates, services.RankOptions{})
//	for _, r := range ranked {
//	    notify(r.Driver.ID(), r.DistanceKm)
//	}
type DispatchScorer struct {
	policy ScoringPolicy
	jitter func() float64
	now    func() time.Time
}

type ScorerOption func(*DispatchScorer)

// WithJitterSource replaces the random source. fn must return values in [0, 1).
func WithJitterSource(fn func() float64) ScorerOption {
	return func(s *DispatchScorer) {
		s.jitter = fn
	}
}

// WithClock replaces the clock used for the location age check.
func WithClock(fn func() time.Time) ScorerOption {
	return func(s *DispatchScorer) {
		s.now = fn
	}
}

func NewDispatchScorer(policy ScoringPolicy, opts ...ScorerOption) DispatchScorer {
	s := DispatchScorer{
		policy: policy,
		jitter: rand.Float64,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s DispatchScorer) Policy() ScoringPolicy {
	return s.policy
}

// Rank returns the eligible candidates sorted by descending score. An empty
// result is not an error.
func (s DispatchScorer) Rank(o *order.Order, candidates []Candidate, opts RankOptions) []RankedDriver {
	if o == nil {
		return nil
	}

	maxDistance := opts.MaxDistanceKm
	if maxDistance <= 0 {
		maxDistance = s.policy.RadiusKm
		if opts.ForceWiden {
			maxDistance = s.policy.WideRadiusKm
		}
	}

	now := s.now()
	ranked := make([]RankedDriver, 0, len(candidates))
	for _, c := range candidates {
		d := c.Driver
		if d == nil || d.Validate() != nil {
			continue
		}
		if !d.Presence().IsAvailable() || !d.HasFreshLocation(now, s.policy.MaxLocationAge) {
			continue
		}

		distance := kernel.Distance(d.Position().Point, o.ShopLocation())
		if distance > maxDistance {
			continue
		}

		bonus, ok := s.batching(o, c.ActiveOrders)
		if !ok {
			continue
		}

		score := s.policy.BaseScore - s.policy.DistancePenaltyPerKm*distance + bonus
		if s.policy.JitterRange > 0 {
			score += s.jitter() * s.policy.JitterRange
		}

		ranked = append(ranked, RankedDriver{Driver: d, Score: score, DistanceKm: distance})
	}

	slices.SortStableFunc(ranked, func(a, b RankedDriver) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return ranked
}

// batching returns the bonus for a driver carrying active, and false when
// the driver carries an order from another shop, even alongside orders
// from the same shop.
func (s DispatchScorer) batching(o *order.Order, active []*order.Order) (float64, bool) {
	sameShop := false
	for _, other := range active {
		if other == nil || other.IsTerminal() || other.IsEqual(o) {
			continue
		}
		if other.ShopSlug() != o.ShopSlug() {
			return 0, false
		}
		sameShop = true
	}

	if sameShop {
		return s.policy.BatchingBonus, true
	}
	return 0, true
}
