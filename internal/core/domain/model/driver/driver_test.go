package driver_test

import (
	"testing"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
	"github.com/daniel06264831/menuia/internal/pkg/secret"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registeredAt = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func createValidDriver(t *testing.T) *driver.Driver {
	t.Helper()
	hash, err := secret.Hash("1234")
	require.NoError(t, err)

	d, err := driver.NewDriver(kernel.NewUUID(), "Luis", "+52 443 555 0101", hash, "", registeredAt)
	require.NoError(t, err)
	return d
}

func TestNewDriver(t *testing.T) {
	t.Run("should register an offline driver", func(t *testing.T) {
		d := createValidDriver(t)

		require.NoError(t, d.Validate())
		assert.Equal(t, "Luis", d.Name())
		assert.Equal(t, "524435550101", d.Phone())
		assert.Equal(t, driver.DefaultVehicle, d.Vehicle())
		assert.Equal(t, driver.PresenceOffline, d.Presence())
		assert.False(t, d.Position().IsKnown())
		assert.Zero(t, d.Earnings())
		assert.True(t, d.CheckPassword("1234"))
		assert.False(t, d.CheckPassword("4321"))
	})

	t.Run("should aggregate validation errors", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.UUID{}, " ", "abc", "", "Bici", registeredAt)

		require.Error(t, err)
		assert.Nil(t, d)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, driver.ErrNameIsRequired)
		require.ErrorIs(t, err, driver.ErrPasswordHashIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var d driver.Driver
		require.ErrorIs(t, d.Validate(), driver.ErrDriverIsNotConstructed)

		var nilDriver *driver.Driver
		require.ErrorIs(t, nilDriver.Validate(), driver.ErrDriverIsNotConstructed)
	})
}

func TestRestoreDriver(t *testing.T) {
	d := createValidDriver(t)
	require.NoError(t, d.SetPresence(driver.PresenceBusy))
	require.NoError(t, d.MoveTo(kernel.MustNewGeoPoint(20.01, -100.0), registeredAt.Add(time.Minute)))
	require.NoError(t, d.Credit(35))

	restored, err := driver.RestoreDriver(d.Snapshot())
	require.NoError(t, err)
	assert.True(t, restored.IsEqual(d))
	assert.Equal(t, d.Snapshot(), restored.Snapshot())

	broken := d.Snapshot()
	broken.Presence = "sleeping"
	broken.Earnings = -1
	_, err = driver.RestoreDriver(broken)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, driver.ErrEarningsIsNegative)
}

func TestDriver_HasFreshLocation(t *testing.T) {
	d := createValidDriver(t)
	now := registeredAt.Add(time.Hour)

	assert.False(t, d.HasFreshLocation(now, 15*time.Minute), "never reported")

	require.NoError(t, d.MoveTo(kernel.MustNewGeoPoint(20.0, -100.0), now.Add(-10*time.Minute)))
	assert.True(t, d.HasFreshLocation(now, 15*time.Minute))
	assert.False(t, d.HasFreshLocation(now, 5*time.Minute))
	assert.True(t, d.HasFreshLocation(now, 0), "zero max age disables the age check")
}

func TestDriver_MoveTo(t *testing.T) {
	d := createValidDriver(t)
	point := kernel.MustNewGeoPoint(20.0, -100.0)
	require.NoError(t, d.MoveTo(point, registeredAt))

	require.ErrorIs(t, d.MoveTo(kernel.GeoPoint{}, registeredAt.Add(time.Minute)), errs.ErrValueIsRequired)
	assert.True(t, d.Position().Point.IsEqual(point), "missing fixes keep the last location")
	assert.Equal(t, registeredAt, d.Position().UpdatedAt)
}

func TestDriver_Credit(t *testing.T) {
	d := createValidDriver(t)

	require.NoError(t, d.Credit(35))
	require.NoError(t, d.Credit(35))
	assert.InDelta(t, 70.0, d.Earnings(), 1e-9)

	require.ErrorIs(t, d.Credit(-1), errs.ErrValueIsOutOfRange)
	assert.InDelta(t, 70.0, d.Earnings(), 1e-9)
}

func TestPresence(t *testing.T) {
	assert.False(t, driver.PresenceOffline.IsAvailable())
	assert.True(t, driver.PresenceOnline.IsAvailable())
	assert.True(t, driver.PresenceBusy.IsAvailable())
	assert.ElementsMatch(t, []driver.Presence{driver.PresenceOnline, driver.PresenceBusy}, driver.CandidatePresences())

	require.ErrorIs(t, driver.Presence("away").Validate(), errs.ErrValueIsInvalid)
}
