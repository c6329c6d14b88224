package orderrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/daniel06264831/menuia/internal/adapters/out/postgres/dberr"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func activeStatuses() []string {
	return []string{string(order.StatusPending), string(order.StatusDriverAssigned)}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Wrap("add order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns while the stored version still matches.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"driver_id":       dto.DriverID,
			"driver_name":     dto.DriverName,
			"driver_phone":    dto.DriverPhone,
			"status":          dto.Status,
			"delivery_status": dto.DeliveryStatus,
			"updated_at":      dto.UpdatedAt,
			"version":         gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return dberr.Wrap("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		if err = r.ensureExists(ctx, aggregate.ID()); err != nil {
			return err
		}
		return errs.NewVersionIsInvalidError("order", fmt.Errorf("version %d is stale", aggregate.Version()))
	}

	aggregate.BumpVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Claim is a single conditional UPDATE. Under READ COMMITTED a competing
// claim blocks on the row lock and re-evaluates the predicate after the
// winner commits, so it matches nothing.
func (r *GormOrderRepository) Claim(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	assignment := aggregate.Assignment()
	if assignment == nil {
		return order.ErrOrderIsNotClaimed
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	claimedAt := aggregate.UpdatedAt()
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND driver_id IS NULL AND status = ?", dto.ID, string(order.StatusPending)).
		Updates(map[string]any{
			"driver_id":       dto.DriverID,
			"driver_name":     dto.DriverName,
			"driver_phone":    dto.DriverPhone,
			"status":          dto.Status,
			"delivery_status": dto.DeliveryStatus,
			"claimed_at":      claimedAt,
			"updated_at":      dto.UpdatedAt,
			"version":         gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return dberr.Wrap("claim order", result.Error)
	}

	if result.RowsAffected == 0 {
		if err = r.ensureExists(ctx, aggregate.ID()); err != nil {
			return err
		}
		return order.ErrOrderAlreadyTaken
	}

	aggregate.BumpVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.NotFound("get order", "order", id.String(), err)
	}

	return ToDomain(dto)
}

func (r *GormOrderRepository) FindActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*order.Order, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND status IN ?", driverID.Bytes(), activeStatuses()).
		Order("claimed_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, dberr.Wrap("find active orders of driver", err)
	}

	return toDomainList(dtos)
}

func (r *GormOrderRepository) FindPendingDispatch(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND delivery_status = ? AND fulfillment = ? AND driver_id IS NULL",
			string(order.StatusPending), string(order.DeliveryPendingAssignment), string(order.FulfillmentDelivery)).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, dberr.Wrap("find orders pending dispatch", err)
	}

	return toDomainList(dtos)
}

func (r *GormOrderRepository) FindCompletedByDriver(ctx context.Context, driverID kernel.UUID, limit int) ([]*order.Order, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND status = ? AND delivery_status = ?",
			driverID.Bytes(), string(order.StatusCompleted), string(order.DeliveryDelivered)).
		Order("updated_at DESC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, dberr.Wrap("find completed orders of driver", err)
	}

	return toDomainList(dtos)
}

func (r *GormOrderRepository) CountCreatedSince(ctx context.Context, shopSlug string, since time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("shop_slug = ? AND created_at >= ?", shopSlug, since).
		Count(&count).Error
	if err != nil {
		return 0, dberr.Wrap("count orders of shop", err)
	}

	return int(count), nil
}

func (r *GormOrderRepository) ExistsActiveForCustomer(ctx context.Context, phone string, method order.PaymentMethod) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("customer_phone = ? AND payment = ? AND status IN ?", phone, string(method), activeStatuses()).
		Count(&count).Error
	if err != nil {
		return false, dberr.Wrap("find active orders of customer", err)
	}

	return count > 0, nil
}

func (r *GormOrderRepository) ensureExists(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return dberr.Wrap("get order", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}
