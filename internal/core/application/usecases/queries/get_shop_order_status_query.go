package queries

import (
	"errors"
	"strings"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
)

var ErrGetShopOrderStatusQueryIsNotConstructed = errors.New(
	"GetShopOrderStatusQuery must be created via NewGetShopOrderStatusQuery constructor",
)

type GetShopOrderStatusQuery struct {
	slug    string
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShopOrderStatusQuery(slug string, orderID kernel.UUID) (GetShopOrderStatusQuery, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))

	var errList []error
	if slug == "" {
		errList = append(errList, errs.NewValueIsRequiredError("slug"))
	}
	errList = append(errList, orderID.Validate())
	if err := errors.Join(errList...); err != nil {
		return GetShopOrderStatusQuery{}, err
	}

	return GetShopOrderStatusQuery{
		slug:    slug,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetShopOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetShopOrderStatusQueryIsNotConstructed)
}

func (q GetShopOrderStatusQuery) Slug() string {
	return q.slug
}

func (q GetShopOrderStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}
