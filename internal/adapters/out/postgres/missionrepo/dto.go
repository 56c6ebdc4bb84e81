// Package missionrepo provides data transfer objects and mapping functions
// for mission persistence.
package missionrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"

	"github.com/google/uuid"
)

// MissionDTO represents the database structure for persisting mission
// aggregates. The courier index serves the active-mission lookups the
// assignment path runs on every attempt.
//
// The partial unique index on courier_id admits at most one mission per
// courier in an active status (Pending=1, InProgress=2); the database
// enforces the invariant even when two assignments race past each
// other's in-transaction busy checks.
type MissionDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID   uuid.UUID `gorm:"type:uuid;index"`
	CourierID   uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uidx_missions_active_courier,where:status IN (1,2)"`
	Status      int       `gorm:"index"`
	StartedAt   *time.Time
	CompletedAt *time.Time
	Notes       string
}

// TableName specifies the database table name for mission entities.
func (MissionDTO) TableName() string {
	return "missions"
}

// fromDomain converts a mission domain aggregate to its database
// representation.
func fromDomain(aggregate *mission.Mission) MissionDTO {
	return MissionDTO{
		ID:          aggregate.ID().Bytes(),
		RequestID:   aggregate.RequestID().Bytes(),
		CourierID:   aggregate.CourierID().Bytes(),
		Status:      int(aggregate.Status()),
		StartedAt:   aggregate.StartedAt(),
		CompletedAt: aggregate.CompletedAt(),
		Notes:       aggregate.Notes(),
	}
}

// toDomain converts a database DTO to a mission domain aggregate using
// RestoreMission.
func toDomain(dto MissionDTO) (*mission.Mission, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return mission.RestoreMission(
		id, requestID, courierID,
		mission.Status(dto.Status),
		dto.StartedAt, dto.CompletedAt,
		dto.Notes)
}
