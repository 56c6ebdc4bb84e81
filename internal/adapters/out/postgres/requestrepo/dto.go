// Package requestrepo provides data transfer objects and mapping functions
// for delivery request persistence. It implements the repository pattern for
// the request aggregate, handling the conversion between domain entities and
// database representations.
package requestrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

// RequestDTO represents the database structure for persisting request
// aggregates. Indexed on status and scheduled time because the dispatch
// sweep reads pending requests ordered by schedule.
type RequestDTO struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ClientID     uuid.UUID   `gorm:"type:uuid;index"`
	CourierID    *uuid.UUID  `gorm:"type:uuid;index"`
	Pickup       WaypointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff      WaypointDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	WeightGrams  int
	VolumeCm3    int
	Description  string
	VehicleClass int
	ScheduledAt  time.Time `gorm:"index"`
	Status       int       `gorm:"index"`
}

// TableName specifies the database table name for request entities.
func (RequestDTO) TableName() string {
	return "requests"
}

// WaypointDTO represents an embedded pickup or dropoff location within the
// requests table.
type WaypointDTO struct {
	Latitude  float64
	Longitude float64
	Address   string
}

// fromDomain converts a request domain aggregate to its database
// representation.
func fromDomain(aggregate *request.Request) RequestDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return RequestDTO{
		ID:        aggregate.ID().Bytes(),
		ClientID:  aggregate.ClientID().Bytes(),
		CourierID: courierID,
		Pickup: WaypointDTO{
			Latitude:  aggregate.Pickup().Point().Latitude(),
			Longitude: aggregate.Pickup().Point().Longitude(),
			Address:   aggregate.Pickup().Address(),
		},
		Dropoff: WaypointDTO{
			Latitude:  aggregate.Dropoff().Point().Latitude(),
			Longitude: aggregate.Dropoff().Point().Longitude(),
			Address:   aggregate.Dropoff().Address(),
		},
		WeightGrams:  aggregate.Load().WeightGrams(),
		VolumeCm3:    aggregate.Load().VolumeCm3(),
		Description:  aggregate.Load().Description(),
		VehicleClass: int(aggregate.VehicleClass()),
		ScheduledAt:  aggregate.ScheduledAt(),
		Status:       int(aggregate.Status()),
	}
}

// toDomain converts a database DTO to a request domain aggregate using
// RestoreRequest.
func toDomain(dto RequestDTO) (*request.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	pickup, err := toWaypoint(dto.Pickup)
	if err != nil {
		return nil, err
	}
	dropoff, err := toWaypoint(dto.Dropoff)
	if err != nil {
		return nil, err
	}
	load, err := request.NewLoad(dto.WeightGrams, dto.VolumeCm3, dto.Description)
	if err != nil {
		return nil, err
	}

	return request.RestoreRequest(
		id, clientID, pickup, dropoff, load,
		vehicle.Class(dto.VehicleClass), dto.ScheduledAt,
		request.Status(dto.Status), courierID)
}

func toWaypoint(dto WaypointDTO) (request.Waypoint, error) {
	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return request.Waypoint{}, err
	}
	return request.NewWaypoint(point, dto.Address)
}
