package commands

import (
	"errors"
	"fmt"

	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
)

var ErrSetDriverPresenceCommandIsNotConstructed = errors.New(
	"SetDriverPresenceCommand must be created via NewSetDriverPresenceCommand constructor",
)

// SetDriverPresenceCommand changes a driver's presence.
//
// Drivers ask for online or offline; busy is derived from the orders they
// carry. A command built with NewSwapDriverPresenceCommand only applies while
// the stored presence equals its expected value.
type SetDriverPresenceCommand struct { //nolint:recvcheck //using for validation
	driverID  kernel.UUID
	requested driver.Presence
	expected  driver.Presence

	guard guard.ConstructorGuard
}

func NewSetDriverPresenceCommand(driverID kernel.UUID, requested driver.Presence) (SetDriverPresenceCommand, error) {
	if err := driverID.Validate(); err != nil {
		return SetDriverPresenceCommand{}, err
	}
	if requested != driver.PresenceOnline && requested != driver.PresenceOffline {
		return SetDriverPresenceCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"presence", fmt.Errorf("drivers can only ask for %s or %s", driver.PresenceOnline, driver.PresenceOffline),
		)
	}

	return SetDriverPresenceCommand{
		driverID:  driverID,
		requested: requested,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewSwapDriverPresenceCommand sets to only if the driver is currently from.
func NewSwapDriverPresenceCommand(driverID kernel.UUID, from, to driver.Presence) (SetDriverPresenceCommand, error) {
	if err := errors.Join(driverID.Validate(), from.Validate(), to.Validate()); err != nil {
		return SetDriverPresenceCommand{}, err
	}

	return SetDriverPresenceCommand{
		driverID:  driverID,
		requested: to,
		expected:  from,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetDriverPresenceCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverPresenceCommandIsNotConstructed)
}

func (c SetDriverPresenceCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c SetDriverPresenceCommand) Requested() driver.Presence {
	return c.requested
}

// Expected is the presence a swap requires, or "" for an unconditional set.
func (c SetDriverPresenceCommand) Expected() driver.Presence {
	return c.expected
}
