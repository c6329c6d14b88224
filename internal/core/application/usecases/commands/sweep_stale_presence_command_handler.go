package commands

import (
	"context"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
)

type SweepStalePresenceCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewSweepStalePresenceCommandHandler(uowFactory DriverUoWFactory) SweepStalePresenceCommandHandler {
	return SweepStalePresenceCommandHandler{uowFactory: uowFactory}
}

// Handle returns the ids of the drivers it turned offline.
func (h SweepStalePresenceCommandHandler) Handle(ctx context.Context, cmd SweepStalePresenceCommand) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ids, err := uow.DriverRepository().MarkStaleOffline(ctx, cmd.Cutoff())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}
