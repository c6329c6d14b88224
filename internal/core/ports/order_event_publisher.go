package ports

import (
	"context"

	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
)

// OrderEventPublisher announces committed order changes to other systems.
// Implementations log their own failures; a lost announcement never fails
// the command that produced it.
type OrderEventPublisher interface {
	PublishOrderChanged(ctx context.Context, o *order.Order)
}
