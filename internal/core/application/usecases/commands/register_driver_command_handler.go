package commands

import (
	"context"
	"errors"

	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
	"github.com/daniel06264831/menuia/internal/pkg/secret"
)

var ErrPhoneIsAlreadyRegistered = errs.NewConflictError("phone", "phone is already registered")

// RegisterDriverCommandHandler creates an offline driver with a hashed password.
type RegisterDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewRegisterDriverCommandHandler(uowFactory DriverUoWFactory) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{uowFactory: uowFactory}
}

func (h RegisterDriverCommandHandler) Handle(ctx context.Context, cmd RegisterDriverCommand) (*driver.Driver, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	phone, err := kernel.NewPhone(cmd.Phone())
	if err != nil {
		return nil, err
	}

	hash, err := secret.Hash(cmd.Password())
	if err != nil {
		return nil, err
	}

	d, err := driver.NewDriver(cmd.DriverID(), cmd.Name(), phone.String(), hash, cmd.Vehicle(), cmd.RegisteredAt())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()

	_, err = driverRepo.GetByPhone(ctx, phone.String())
	switch {
	case err == nil:
		return nil, ErrPhoneIsAlreadyRegistered
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	if err = driverRepo.Add(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
