package services

import (
	"errors"
	"time"

	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

// ScoringPolicy holds the constants of DispatchScorer. They are loaded from
// configuration and default to DefaultScoringPolicy.
type ScoringPolicy struct {
	BaseScore            float64
	DistancePenaltyPerKm float64
	BatchingBonus        float64
	JitterRange          float64
	RadiusKm             float64
	WideRadiusKm         float64
	// MaxLocationAge excludes drivers whose last position is older. Zero
	// disables the check.
	MaxLocationAge time.Duration
}

func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		BaseScore:            100,
		DistancePenaltyPerKm: 10,
		BatchingBonus:        500,
		JitterRange:          20,
		RadiusKm:             3,
		WideRadiusKm:         10,
		MaxLocationAge:       15 * time.Minute,
	}
}

func (p ScoringPolicy) Validate() error {
	var errList []error
	if p.DistancePenaltyPerKm < 0 {
		errList = append(errList, errs.NewValueIsInvalidError("distance penalty"))
	}
	if p.BatchingBonus < 0 {
		errList = append(errList, errs.NewValueIsInvalidError("batching bonus"))
	}
	if p.JitterRange < 0 {
		errList = append(errList, errs.NewValueIsInvalidError("jitter range"))
	}
	if p.RadiusKm <= 0 {
		errList = append(errList, errs.NewValueIsInvalidError("dispatch radius"))
	}
	if p.WideRadiusKm < p.RadiusKm {
		errList = append(errList, errs.NewValueIsOutOfRangeError("wide dispatch radius", p.WideRadiusKm, p.RadiusKm, "unbounded"))
	}
	if p.MaxLocationAge < 0 {
		errList = append(errList, errs.NewValueIsInvalidError("location max age"))
	}
	return errors.Join(errList...)
}
