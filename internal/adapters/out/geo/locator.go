package geo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourierLocationDTO represents the last reported position of a courier.
// A tracking pipeline outside this service keeps the table fresh.
type CourierLocationDTO struct {
	CourierID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Latitude   float64
	Longitude  float64
	ReportedAt time.Time
}

// TableName specifies the database table name for courier locations.
func (CourierLocationDTO) TableName() string {
	return "courier_locations"
}

// GormCourierLocator reads courier positions from the courier_locations
// table.
type GormCourierLocator struct {
	db *gorm.DB
}

// NewGormCourierLocator creates a locator backed by the given connection.
func NewGormCourierLocator(db *gorm.DB) *GormCourierLocator {
	return &GormCourierLocator{db: db}
}

// LastKnownLocation returns the courier's last reported position. The
// second return value is false when the courier has never reported one;
// that is a normal outcome, not an error.
func (l *GormCourierLocator) LastKnownLocation(
	ctx context.Context,
	courierID kernel.UUID,
) (kernel.GeoPoint, bool, error) {
	if err := courierID.Validate(); err != nil {
		return kernel.GeoPoint{}, false, err
	}

	var dto CourierLocationDTO
	err := l.db.WithContext(ctx).First(&dto, "courier_id = ?", courierID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return kernel.GeoPoint{}, false, nil
	}
	if err != nil {
		return kernel.GeoPoint{}, false, err
	}

	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return kernel.GeoPoint{}, false, err
	}

	return point, true, nil
}
