// Package vehiclerepo provides data transfer objects and mapping functions
// for vehicle persistence.
package vehiclerepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

// VehicleDTO represents the database structure for persisting vehicle
// aggregates.
type VehicleDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID      uuid.UUID `gorm:"type:uuid;index"`
	Class          int
	MaxWeightGrams int
	MaxVolumeCm3   int
	Available      bool `gorm:"index"`
	RegisteredAt   time.Time
}

// TableName specifies the database table name for vehicle entities.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// fromDomain converts a vehicle domain aggregate to its database
// representation.
func fromDomain(aggregate *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:             aggregate.ID().Bytes(),
		CourierID:      aggregate.CourierID().Bytes(),
		Class:          int(aggregate.Class()),
		MaxWeightGrams: aggregate.MaxWeightGrams(),
		MaxVolumeCm3:   aggregate.MaxVolumeCm3(),
		Available:      aggregate.IsAvailable(),
		RegisteredAt:   aggregate.RegisteredAt(),
	}
}

// toDomain converts a database DTO to a vehicle domain aggregate using
// RestoreVehicle.
func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return vehicle.RestoreVehicle(
		id, courierID,
		vehicle.Class(dto.Class),
		dto.MaxWeightGrams, dto.MaxVolumeCm3,
		dto.Available, dto.RegisteredAt)
}
