package commands

import (
	"errors"
	"strings"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
)

var ErrRegisterDriverCommandIsNotConstructed = errors.New(
	"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
)

type RegisterDriverCommand struct { //nolint:recvcheck //using for validation
	driverID     kernel.UUID
	name         string
	phone        string
	password     string
	vehicle      string
	registeredAt time.Time

	guard guard.ConstructorGuard
}

func NewRegisterDriverCommand(
	driverID kernel.UUID,
	name, phone, password, vehicle string,
	registeredAt time.Time,
) (RegisterDriverCommand, error) {
	var errList []error
	errList = append(errList, driverID.Validate())
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if strings.TrimSpace(phone) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("phone"))
	}
	if password == "" {
		errList = append(errList, errs.NewValueIsRequiredError("password"))
	}
	if err := errors.Join(errList...); err != nil {
		return RegisterDriverCommand{}, err
	}

	return RegisterDriverCommand{
		driverID:     driverID,
		name:         name,
		phone:        phone,
		password:     password,
		vehicle:      vehicle,
		registeredAt: registeredAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

func (c RegisterDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c RegisterDriverCommand) Name() string {
	return c.name
}

func (c RegisterDriverCommand) Phone() string {
	return c.phone
}

func (c RegisterDriverCommand) Password() string {
	return c.password
}

func (c RegisterDriverCommand) Vehicle() string {
	return c.vehicle
}

func (c RegisterDriverCommand) RegisteredAt() time.Time {
	return c.registeredAt
}
