package commands

import (
	"context"
	"errors"

	"github.com/daniel06264831/menuia/internal/core/domain/model/shop"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
	"github.com/daniel06264831/menuia/internal/pkg/secret"
)

var ErrSlugIsTaken = errs.NewConflictError("slug", "slug is already taken")

type RegisterShopCommandHandler struct {
	uowFactory ShopUoWFactory
}

func NewRegisterShopCommandHandler(uowFactory ShopUoWFactory) RegisterShopCommandHandler {
	return RegisterShopCommandHandler{uowFactory: uowFactory}
}

func (h RegisterShopCommandHandler) Handle(ctx context.Context, cmd RegisterShopCommand) (*shop.Shop, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := secret.Hash(cmd.Password())
	if err != nil {
		return nil, err
	}

	s, err := shop.NewShop(cmd.Slug(), cmd.Name(), hash, cmd.Location(), cmd.Hours(), cmd.RegisteredAt())
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

	shopRepo := uow.ShopRepository()

	_, err = shopRepo.Get(ctx, s.Slug())
	switch {
	case err == nil:
		return nil, ErrSlugIsTaken
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	if err = shopRepo.Add(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
