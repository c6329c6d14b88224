// Package shop provides the Shop aggregate: the owner of orders and the
// addressing key of its real-time channel.
package shop

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
	"github.com/daniel06264831/menuia/internal/pkg/secret"
)

const clockLayout = "15:04"

var (
	ErrSlugIsRequired         = errs.NewValueIsRequiredError("slug")
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
	ErrPasswordHashIsRequired = errs.NewValueIsRequiredError("password")

	ErrShopIsNotConstructed = errors.New("Shop must be created via NewShop constructor")

	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Hours is the daily opening window as HH:MM strings. An empty window means
// the shop did not configure one.
type Hours struct {
	Open  string
	Close string
}

func NewHours(open, closing string) (Hours, error) {
	h := Hours{Open: strings.TrimSpace(open), Close: strings.TrimSpace(closing)}
	if h.Open == "" && h.Close == "" {
		return h, nil
	}

	var errList []error
	if _, err := time.Parse(clockLayout, h.Open); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("hours.open", err))
	}
	if _, err := time.Parse(clockLayout, h.Close); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("hours.close", err))
	}
	if err := errors.Join(errList...); err != nil {
		return Hours{}, err
	}

	return h, nil
}

func (h Hours) IsZero() bool {
	return h.Open == "" && h.Close == ""
}

// Contains reports whether the wall-clock time of t falls in the window.
// Windows that cross midnight ("18:00" to "02:00") are supported.
func (h Hours) Contains(t time.Time) bool {
	if h.IsZero() {
		return true
	}
	open, err1 := time.Parse(clockLayout, h.Open)
	closing, err2 := time.Parse(clockLayout, h.Close)
	if err1 != nil || err2 != nil {
		return true
	}

	minute := t.Hour()*60 + t.Minute()
	from := open.Hour()*60 + open.Minute()
	to := closing.Hour()*60 + closing.Minute()
	if from <= to {
		return minute >= from && minute < to
	}
	return minute >= from || minute < to
}

// Shop is a registered store. Its location is optional: orders of a shop
// without coordinates are broadcast to every online driver.
type Shop struct {
	slug         string
	name         string
	passwordHash string
	location     kernel.GeoPoint
	hours        Hours
	isOpen       bool
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// NewShop registers an open shop.
func NewShop(slug, name, passwordHash string, location kernel.GeoPoint, hours Hours, createdAt time.Time) (*Shop, error) {
	s := &Shop{
		location:  location,
		hours:     hours,
		isOpen:    true,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setSlug(slug),
		s.setName(name),
		s.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Snapshot carries every field of a shop between the aggregate and storage.
type Snapshot struct {
	Slug         string
	Name         string
	PasswordHash string
	Location     kernel.GeoPoint
	Hours        Hours
	IsOpen       bool
	CreatedAt    time.Time
}

func RestoreShop(snap Snapshot) (*Shop, error) {
	s, err := NewShop(snap.Slug, snap.Name, snap.PasswordHash, snap.Location, snap.Hours, snap.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.isOpen = snap.IsOpen
	return s, nil
}

func (s *Shop) Validate() error {
	if s == nil {
		return ErrShopIsNotConstructed
	}
	return s.guard.Validate(ErrShopIsNotConstructed)
}

func (s *Shop) Snapshot() Snapshot {
	return Snapshot{
		Slug:         s.slug,
		Name:         s.name,
		PasswordHash: s.passwordHash,
		Location:     s.location,
		Hours:        s.hours,
		IsOpen:       s.isOpen,
		CreatedAt:    s.createdAt,
	}
}

func (s *Shop) Slug() string { return s.slug }
func (s *Shop) Name() string { return s.name }
func (s *Shop) Location() kernel.GeoPoint { return s.location }
func (s *Shop) Hours() Hours { return s.hours }
func (s *Shop) IsOpen() bool { return s.isOpen }
func (s *Shop) CreatedAt() time.Time { return s.createdAt }

// Ref is the part of the shop copied onto a new order.
func (s *Shop) Ref() order.ShopRef {
	return order.ShopRef{Slug: s.slug, Name: s.name, Location: s.location}
}

// CheckPassword reports whether plain matches the shop credential.
func (s *Shop) CheckPassword(plain string) bool {
	return secret.Matches(s.passwordHash, plain)
}

// SetOpen toggles the manual open/closed flag.
func (s *Shop) SetOpen(open bool) {
	s.isOpen = open
}

// IsAcceptingOrdersAt combines the manual flag with the opening window.
func (s *Shop) IsAcceptingOrdersAt(t time.Time) bool {
	return s.isOpen && s.hours.Contains(t)
}

func (s *Shop) setSlug(slug string) error {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return ErrSlugIsRequired
	}
	if !slugPattern.MatchString(slug) {
		return errs.NewValueIsInvalidErrorWithCause("slug", fmt.Errorf("%q must be lowercase letters, digits and dashes", slug))
	}
	s.slug = slug
	return nil
}

func (s *Shop) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}

func (s *Shop) setPasswordHash(hash string) error {
	if hash == "" {
		return ErrPasswordHashIsRequired
	}
	s.passwordHash = hash
	return nil
}
