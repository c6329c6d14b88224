package commands

import (
	"errors"
	"time"

	"github.com/daniel06264831/menuia/internal/pkg/errs"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
)

var ErrSweepStalePresenceCommandIsNotConstructed = errors.New(
	"SweepStalePresenceCommand must be created via NewSweepStalePresenceCommand constructor",
)

// SweepStalePresenceCommand turns online drivers offline when their last
// position is older than cutoff.
type SweepStalePresenceCommand struct {
	cutoff time.Time

	guard guard.ConstructorGuard
}

func NewSweepStalePresenceCommand(now time.Time, staleAfter time.Duration) (SweepStalePresenceCommand, error) {
	if staleAfter <= 0 {
		return SweepStalePresenceCommand{}, errs.NewValueIsInvalidError("staleAfter")
	}

	return SweepStalePresenceCommand{
		cutoff: now.Add(-staleAfter),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c SweepStalePresenceCommand) Validate() error {
	return c.guard.Validate(ErrSweepStalePresenceCommandIsNotConstructed)
}

func (c SweepStalePresenceCommand) Cutoff() time.Time {
	return c.cutoff
}
