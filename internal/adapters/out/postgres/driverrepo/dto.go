// Package driverrepo maps driver aggregates to the drivers table.
package driverrepo

import (
	"time"

	"github.com/daniel06264831/menuia/internal/adapters/out/postgres/orderrepo"
	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type DriverDTO struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Name         string             `gorm:"size:120;not null"`
	Phone        string             `gorm:"size:20;not null;uniqueIndex"`
	PasswordHash string             `gorm:"not null"`
	Vehicle      string             `gorm:"size:40;not null"`
	Status       string             `gorm:"size:10;not null;index"`
	Location     orderrepo.PointDTO `gorm:"embedded;embeddedPrefix:location_"`
	ReportedAt   *time.Time         `gorm:"column:location_reported_at"`
	Earnings     float64            `gorm:"not null;default:0"`
	CreatedAt    time.Time          `gorm:"autoCreateTime:false"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(aggregate *driver.Driver) DriverDTO {
	s := aggregate.Snapshot()

	dto := DriverDTO{
		ID:           s.ID.Bytes(),
		Name:         s.Name,
		Phone:        s.Phone,
		PasswordHash: s.PasswordHash,
		Vehicle:      s.Vehicle,
		Status:       string(s.Presence),
		Location:     orderrepo.PointFromDomain(s.Position.Point),
		Earnings:     s.Earnings,
		CreatedAt:    s.CreatedAt,
	}
	if s.Position.IsKnown() {
		reportedAt := s.Position.UpdatedAt
		dto.ReportedAt = &reportedAt
	}

	return dto
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var position driver.Position
	if point := dto.Location.ToDomain(); point.IsValid() && dto.ReportedAt != nil {
		position = driver.Position{Point: point, UpdatedAt: *dto.ReportedAt}
	}

	return driver.RestoreDriver(driver.Snapshot{
		ID:           id,
		Name:         dto.Name,
		Phone:        dto.Phone,
		PasswordHash: dto.PasswordHash,
		Vehicle:      dto.Vehicle,
		Presence:     driver.Presence(dto.Status),
		Position:     position,
		Earnings:     dto.Earnings,
		CreatedAt:    dto.CreatedAt,
	})
}
