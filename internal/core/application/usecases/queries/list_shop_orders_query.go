package queries

import (
	"errors"
	"strings"
	"time"

	"github.com/daniel06264831/menuia/internal/pkg/errs"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
)

const (
	DefaultShopOrdersLimit = 100
	MaxShopOrdersLimit     = 500
)

var ErrListShopOrdersQueryIsNotConstructed = errors.New(
	"ListShopOrdersQuery must be created via NewListShopOrdersQuery constructor",
)

// ListShopOrdersQuery lists a shop's orders in a creation-time range.
// Zero bounds are open; a zero limit means DefaultShopOrdersLimit.
type ListShopOrdersQuery struct {
	slug  string
	from  time.Time
	to    time.Time
	limit int

	guard guard.ConstructorGuard
}

func NewListShopOrdersQuery(slug string, from, to time.Time, limit int) (ListShopOrdersQuery, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))

	var errList []error
	if slug == "" {
		errList = append(errList, errs.NewValueIsRequiredError("slug"))
	}
	if limit == 0 {
		limit = DefaultShopOrdersLimit
	}
	if limit < 0 || limit > MaxShopOrdersLimit {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxShopOrdersLimit))
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		errList = append(errList, errs.NewValueIsInvalidError("date range"))
	}
	if err := errors.Join(errList...); err != nil {
		return ListShopOrdersQuery{}, err
	}

	return ListShopOrdersQuery{
		slug:  slug,
		from:  from,
		to:    to,
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListShopOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListShopOrdersQueryIsNotConstructed)
}

func (q ListShopOrdersQuery) Slug() string {
	return q.slug
}

func (q ListShopOrdersQuery) From() time.Time {
	return q.from
}

func (q ListShopOrdersQuery) To() time.Time {
	return q.to
}

func (q ListShopOrdersQuery) Limit() int {
	return q.limit
}
