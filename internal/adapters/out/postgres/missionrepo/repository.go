package missionrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// activeStatuses are the mission statuses that occupy a courier.
var activeStatuses = []int{int(mission.Pending), int(mission.InProgress)}

// GormMissionRepository implements MissionRepository using GORM.
type GormMissionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMissionRepository creates a new GORM mission repository.
func NewGormMissionRepository(db *gorm.DB, tracker aggregateTracker) *GormMissionRepository {
	return &GormMissionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new mission to the database. A unique violation on the
// active-courier index means a concurrent assignment claimed the courier
// first; it surfaces as a version conflict so the caller's retry loop
// rebuilds its pool without this courier.
func (r *GormMissionRepository) Add(ctx context.Context, aggregate *mission.Mission) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewVersionIsInvalidErrorWithCause("courier active mission")
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing mission to the database.
func (r *GormMissionRepository) Update(ctx context.Context, aggregate *mission.Mission) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&MissionDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a mission by ID.
func (r *GormMissionRepository) Get(ctx context.Context, id kernel.UUID) (*mission.Mission, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MissionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("mission", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByCourier retrieves the courier's pending or in-progress
// mission. Returns an errs.ObjectNotFoundError when the courier is free.
func (r *GormMissionRepository) GetActiveByCourier(
	ctx context.Context,
	courierID kernel.UUID,
) (*mission.Mission, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dto MissionDTO
	err := r.db.WithContext(ctx).
		First(&dto, "courier_id = ? AND status IN ?", courierID.Bytes(), activeStatuses).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active mission", courierID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveCourierIDs retrieves the couriers that currently have a pending
// or in-progress mission.
func (r *GormMissionRepository) GetActiveCourierIDs(ctx context.Context) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&MissionDTO{}).
		Where("status IN ?", activeStatuses).
		Pluck("courier_id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, courierID)
	}

	return ids, nil
}
