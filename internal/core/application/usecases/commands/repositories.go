// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RequestRepoFactory provides access to the request repository within a transaction.
	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	// MissionRepoFactory provides access to the mission repository within a transaction.
	MissionRepoFactory interface {
		MissionRepository() ports.MissionRepository
	}

	// VehicleRepoFactory provides access to the vehicle repository within a transaction.
	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	// ScheduleRepoFactory provides access to the schedule repository within a transaction.
	ScheduleRepoFactory interface {
		ScheduleRepository() ports.ScheduleRepository
	}

	// MissionUoW manages transactions for mission lifecycle operations.
	// Lifecycle commands advance the owning request in the same
	// transaction, so the request repository rides along.
	MissionUoW interface {
		TxManager
		MissionRepoFactory
		RequestRepoFactory
	}

	// MissionUoWFactory creates new mission unit of work instances.
	MissionUoWFactory interface {
		Create() MissionUoW
	}

	// DispatchUoW manages transactions for the assignment workflow, which
	// reads vehicles and schedules and writes requests and missions.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   requestRepo := uow.RequestRepository()
	//   missionRepo := uow.MissionRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	DispatchUoW interface {
		TxManager
		RequestRepoFactory
		MissionRepoFactory
		VehicleRepoFactory
		ScheduleRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}
)
