package queries

import (
	"errors"
	"strings"

	"github.com/daniel06264831/menuia/internal/pkg/errs"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
)

// ErrInvalidCredentials is returned for an unknown account or a wrong
// password alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

var (
	ErrAuthenticateDriverQueryIsNotConstructed = errors.New(
		"AuthenticateDriverQuery must be created via NewAuthenticateDriverQuery constructor",
	)
	ErrAuthenticateShopQueryIsNotConstructed = errors.New(
		"AuthenticateShopQuery must be created via NewAuthenticateShopQuery constructor",
	)
)

type AuthenticateDriverQuery struct {
	phone    string
	password string

	guard guard.ConstructorGuard
}

func NewAuthenticateDriverQuery(phone, password string) (AuthenticateDriverQuery, error) {
	var errList []error
	if strings.TrimSpace(phone) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("phone"))
	}
	if password == "" {
		errList = append(errList, errs.NewValueIsRequiredError("password"))
	}
	if err := errors.Join(errList...); err != nil {
		return AuthenticateDriverQuery{}, err
	}

	return AuthenticateDriverQuery{
		phone:    phone,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q AuthenticateDriverQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateDriverQueryIsNotConstructed)
}

func (q AuthenticateDriverQuery) Phone() string {
	return q.phone
}

func (q AuthenticateDriverQuery) Password() string {
	return q.password
}

type AuthenticateShopQuery struct {
	slug     string
	password string

	guard guard.ConstructorGuard
}

func NewAuthenticateShopQuery(slug, password string) (AuthenticateShopQuery, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))

	var errList []error
	if slug == "" {
		errList = append(errList, errs.NewValueIsRequiredError("slug"))
	}
	if password == "" {
		errList = append(errList, errs.NewValueIsRequiredError("password"))
	}
	if err := errors.Join(errList...); err != nil {
		return AuthenticateShopQuery{}, err
	}

	return AuthenticateShopQuery{
		slug:     slug,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q AuthenticateShopQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateShopQueryIsNotConstructed)
}

func (q AuthenticateShopQuery) Slug() string {
	return q.slug
}

func (q AuthenticateShopQuery) Password() string {
	return q.password
}
