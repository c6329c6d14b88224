package ports

import (
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
)

// RetryScheduler remembers that an order must be dispatched again at a given
// time. Scheduling the same order twice keeps the later time.
type RetryScheduler interface {
	Schedule(orderID kernel.UUID, at time.Time)
}
