package jobs

import (
	"sort"
	"sync"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
)

// RetryQueue keeps at most one pending dispatch retry per order.
// It is safe for concurrent use and satisfies ports.RetryScheduler.
type RetryQueue struct {
	mu      sync.Mutex
	pending map[kernel.UUID]time.Time
}

func NewRetryQueue() *RetryQueue {
	return &RetryQueue{pending: make(map[kernel.UUID]time.Time)}
}

// Schedule registers a retry for orderID at the given time. An earlier
// entry for the same order is replaced by the later one.
func (q *RetryQueue) Schedule(orderID kernel.UUID, at time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if current, ok := q.pending[orderID]; ok && current.After(at) {
		return
	}
	q.pending[orderID] = at
}

// Due removes and returns the orders whose retry time is not after now,
// oldest first.
func (q *RetryQueue) Due(now time.Time) []kernel.UUID {
	q.mu.Lock()
	defer q.mu.Unlock()

	type entry struct {
		id kernel.UUID
		at time.Time
	}

	var due []entry
	for id, at := range q.pending {
		if !at.After(now) {
			due = append(due, entry{id: id, at: at})
			delete(q.pending, id)
		}
	}

	sort.Slice(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })

	ids := make([]kernel.UUID, 0, len(due))
	for _, e := range due {
		ids = append(ids, e.id)
	}
	return ids
}

func (q *RetryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
