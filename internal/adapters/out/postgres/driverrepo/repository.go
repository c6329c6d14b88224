package driverrepo

import (
	"context"
	"errors"
	"time"

	"github.com/daniel06264831/menuia/internal/adapters/out/postgres/dberr"
	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPhoneIsTaken = errs.NewConflictError("phone", "phone is already registered")

// GormDriverRepository implements ports.DriverRepository using GORM.
// Apart from Add, every write is one UPDATE statement on the row.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPhoneIsTaken
		}
		return dberr.Wrap("add driver", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.NotFound("get driver", "driver", id.String(), err)
	}

	return toDomain(dto)
}

func (r *GormDriverRepository) GetByPhone(ctx context.Context, phone string) (*driver.Driver, error) {
	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "phone = ?", phone).Error; err != nil {
		return nil, dberr.NotFound("get driver by phone", "driver", phone, err)
	}

	return toDomain(dto)
}

func (r *GormDriverRepository) ListCandidates(ctx context.Context, presences ...driver.Presence) ([]*driver.Driver, error) {
	if len(presences) == 0 {
		return []*driver.Driver{}, nil
	}

	statuses := make([]string, 0, len(presences))
	for _, p := range presences {
		statuses = append(statuses, string(p))
	}

	var dtos []DriverDTO
	err := r.db.WithContext(ctx).
		Where("status IN ? AND location_lat IS NOT NULL AND location_lng IS NOT NULL", statuses).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, dberr.Wrap("list candidate drivers", err)
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		drivers = append(drivers, d)
	}

	return drivers, nil
}

func (r *GormDriverRepository) SetPresence(ctx context.Context, id kernel.UUID, presence driver.Presence) error {
	if err := presence.Validate(); err != nil {
		return err
	}

	return r.updateRow(ctx, "set driver presence", id, map[string]any{"status": string(presence)})
}

func (r *GormDriverRepository) SwapPresence(ctx context.Context, id kernel.UUID, from, to driver.Presence) (bool, error) {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Model(&DriverDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), string(from)).
		Update("status", string(to))
	if result.Error != nil {
		return false, dberr.Wrap("swap driver presence", result.Error)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	return false, r.ensureExists(ctx, id)
}

func (r *GormDriverRepository) UpdateLocation(ctx context.Context, id kernel.UUID, point kernel.GeoPoint, at time.Time) error {
	if !point.IsValid() {
		return errs.NewValueIsRequiredError("location")
	}

	return r.updateRow(ctx, "update driver location", id, map[string]any{
		"location_lat":         point.Lat(),
		"location_lng":         point.Lng(),
		"location_reported_at": at,
	})
}

func (r *GormDriverRepository) Credit(ctx context.Context, id kernel.UUID, amount float64) error {
	if amount < 0 {
		return driver.ErrEarningsIsNegative
	}

	return r.updateRow(ctx, "credit driver", id, map[string]any{
		"earnings": gorm.Expr("earnings + ?", amount),
	})
}

func (r *GormDriverRepository) MarkStaleOffline(ctx context.Context, before time.Time) ([]kernel.UUID, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		UPDATE drivers
		SET status = ?
		WHERE status = ?
			AND (location_reported_at IS NULL OR location_reported_at < ?)
		RETURNING id
	`, string(driver.PresenceOffline), string(driver.PresenceOnline), before).Rows()
	if err != nil {
		return nil, dberr.Wrap("mark stale drivers offline", err)
	}
	defer rows.Close()

	ids := make([]kernel.UUID, 0)
	for rows.Next() {
		var raw uuid.UUID
		if err = rows.Scan(&raw); err != nil {
			return nil, dberr.Wrap("mark stale drivers offline", err)
		}
		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, dberr.Wrap("mark stale drivers offline", err)
	}

	return ids, nil
}

func (r *GormDriverRepository) updateRow(ctx context.Context, operation string, id kernel.UUID, columns map[string]any) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&DriverDTO{}).Where("id = ?", id.Bytes()).Updates(columns)
	if result.Error != nil {
		return dberr.Wrap(operation, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driver", id.String())
	}

	return nil
}

func (r *GormDriverRepository) ensureExists(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&DriverDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return dberr.Wrap("get driver", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("driver", id.String())
	}
	return nil
}
