package driver

import (
	"errors"
	"strings"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
	"github.com/daniel06264831/menuia/internal/pkg/guard"
	"github.com/daniel06264831/menuia/internal/pkg/secret"
)

// DefaultVehicle is assigned when registration leaves the vehicle empty.
const DefaultVehicle = "Moto"

var (
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
	ErrPasswordHashIsRequired = errs.NewValueIsRequiredError("password")
	ErrEarningsIsNegative     = errs.NewValueIsInvalidError("earnings")

	// ErrDriverIsNotConstructed is returned when using a Driver built outside
	// NewDriver or RestoreDriver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Position is the last location a driver reported.
type Position struct {
	Point     kernel.GeoPoint
	UpdatedAt time.Time
}

// IsKnown reports whether the driver ever reported a usable location.
func (p Position) IsKnown() bool {
	return p.Point.IsValid()
}

// Driver is the aggregate root for a delivery driver.
//
// Presence, position and earnings are updated in storage through single
// statements (see ports.DriverRepository); the mutators below keep the
// in-memory aggregate consistent with those updates.
type Driver struct {
	id           kernel.UUID
	name         string
	phone        string
	passwordHash string
	vehicle      string
	presence     Presence
	position     Position
	earnings     float64
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// NewDriver registers an offline driver without a known position.
//
// Example:
//
//	hash, _ := secret.Hash("1234")
//	d, err := driver.NewDriver(kernel.NewUUID(), "Luis", "443 555 0101", hash, "", time.Now())
func NewDriver(id kernel.UUID, name, phone, passwordHash, vehicle string, createdAt time.Time) (*Driver, error) {
	d := &Driver{
		presence:  PresenceOffline,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setPhone(phone),
		d.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	d.setVehicle(vehicle)
	return d, nil
}

// Snapshot carries every field of a driver between the aggregate and storage.
type Snapshot struct {
	ID           kernel.UUID
	Name         string
	Phone        string
	PasswordHash string
	Vehicle      string
	Presence     Presence
	Position     Position
	Earnings     float64
	CreatedAt    time.Time
}

// RestoreDriver rebuilds a driver from storage.
func RestoreDriver(s Snapshot) (*Driver, error) {
	d := &Driver{
		position:  s.Position,
		createdAt: s.CreatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(s.ID),
		d.setName(s.Name),
		d.setPhone(s.Phone),
		d.setPasswordHash(s.PasswordHash),
		d.setPresence(s.Presence),
		d.setEarnings(s.Earnings),
	); err != nil {
		return nil, err
	}

	d.setVehicle(s.Vehicle)
	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) Snapshot() Snapshot {
	return Snapshot{
		ID:           d.id,
		Name:         d.name,
		Phone:        d.phone,
		PasswordHash: d.passwordHash,
		Vehicle:      d.vehicle,
		Presence:     d.presence,
		Position:     d.position,
		Earnings:     d.earnings,
		CreatedAt:    d.createdAt,
	}
}

func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *Driver) ID() kernel.UUID { return d.id }
func (d *Driver) Name() string { return d.name }
func (d *Driver) Phone() string { return d.phone }
func (d *Driver) Vehicle() string { return d.vehicle }
func (d *Driver) Presence() Presence { return d.presence }
func (d *Driver) Position() Position { return d.position }
func (d *Driver) Earnings() float64 { return d.earnings }
func (d *Driver) CreatedAt() time.Time { return d.createdAt }

// CheckPassword reports whether plain matches the stored credential.
func (d *Driver) CheckPassword(plain string) bool {
	return secret.Matches(d.passwordHash, plain)
}

// HasFreshLocation reports whether the driver's position is known and no
// older than maxAge at now. A zero maxAge only requires a known position.
func (d *Driver) HasFreshLocation(now time.Time, maxAge time.Duration) bool {
	if !d.position.IsKnown() {
		return false
	}
	if maxAge <= 0 {
		return true
	}
	return now.Sub(d.position.UpdatedAt) <= maxAge
}

// SetPresence replaces the driver's presence.
func (d *Driver) SetPresence(p Presence) error {
	return d.setPresence(p)
}

// MoveTo records a new position. Missing points are rejected so a GPS-less
// report never erases the last good location.
func (d *Driver) MoveTo(point kernel.GeoPoint, at time.Time) error {
	if !point.IsValid() {
		return errs.NewValueIsRequiredError("location")
	}
	d.position = Position{Point: point, UpdatedAt: at}
	return nil
}

// Credit adds a delivery payout to the driver's earnings.
func (d *Driver) Credit(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsOutOfRangeError("credit", amount, 0, "unbounded")
	}
	d.earnings += amount
	return nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setPhone(raw string) error {
	phone, err := kernel.NewPhone(raw)
	if err != nil {
		return err
	}
	d.phone = phone.String()
	return nil
}

func (d *Driver) setPasswordHash(hash string) error {
	if hash == "" {
		return ErrPasswordHashIsRequired
	}
	d.passwordHash = hash
	return nil
}

func (d *Driver) setVehicle(vehicle string) {
	vehicle = strings.TrimSpace(vehicle)
	if vehicle == "" {
		vehicle = DefaultVehicle
	}
	d.vehicle = vehicle
}

func (d *Driver) setPresence(p Presence) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d.presence = p
	return nil
}

func (d *Driver) setEarnings(earnings float64) error {
	if earnings < 0 {
		return ErrEarningsIsNegative
	}
	d.earnings = earnings
	return nil
}
