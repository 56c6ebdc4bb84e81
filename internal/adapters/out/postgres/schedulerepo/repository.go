package schedulerepo

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/schedule"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormScheduleRepository implements ScheduleRepository using GORM.
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewGormScheduleRepository creates a new GORM schedule repository.
func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

// Put replaces the courier's stored schedule wholesale. Schedules are
// authored as a unit, so the write deletes every existing row for the
// courier before inserting the new set. Run it inside a transaction.
func (r *GormScheduleRepository) Put(ctx context.Context, aggregate *schedule.Schedule) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	courierID := aggregate.CourierID().Bytes()
	db := r.db.WithContext(ctx)

	if err := db.Delete(&WeeklyWindowDTO{}, "courier_id = ?", courierID).Error; err != nil {
		return err
	}
	if err := db.Delete(&DayOverrideDTO{}, "courier_id = ?", courierID).Error; err != nil {
		return err
	}
	if err := db.Delete(&RangeOverrideDTO{}, "courier_id = ?", courierID).Error; err != nil {
		return err
	}

	weekly, days, ranges := fromDomain(aggregate)
	if len(weekly) > 0 {
		if err := db.Create(&weekly).Error; err != nil {
			return err
		}
	}
	if len(days) > 0 {
		if err := db.Create(&days).Error; err != nil {
			return err
		}
	}
	if len(ranges) > 0 {
		if err := db.Create(&ranges).Error; err != nil {
			return err
		}
	}

	return nil
}

// GetByCourier retrieves the courier's schedule. A courier with no stored
// rows at all has no schedule and gets an errs.ObjectNotFoundError.
func (r *GormScheduleRepository) GetByCourier(
	ctx context.Context,
	courierID kernel.UUID,
) (*schedule.Schedule, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	raw := courierID.Bytes()

	var weekly []WeeklyWindowDTO
	if err := db.Find(&weekly, "courier_id = ?", raw).Error; err != nil {
		return nil, err
	}
	var days []DayOverrideDTO
	if err := db.Find(&days, "courier_id = ?", raw).Error; err != nil {
		return nil, err
	}
	var ranges []RangeOverrideDTO
	if err := db.Find(&ranges, "courier_id = ?", raw).Error; err != nil {
		return nil, err
	}

	if len(weekly) == 0 && len(days) == 0 && len(ranges) == 0 {
		return nil, errs.NewObjectNotFoundError("schedule", courierID.String())
	}

	return toDomain(courierID, weekly, days, ranges)
}
