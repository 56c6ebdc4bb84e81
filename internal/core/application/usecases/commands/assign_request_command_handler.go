package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// maxAssignAttempts bounds the optimistic-conflict retry loop. Each
// attempt reloads the request from a fresh snapshot.
const maxAssignAttempts = 3

var (
	// ErrRequestNotPending is returned when the request is not in Pending
	// status, typically because a concurrent dispatch path already
	// assigned it.
	ErrRequestNotPending = errors.New("request is not pending")

	// ErrNoCandidateAvailable is returned when no courier can serve the
	// request right now. The request stays pending; this is a normal
	// outcome, not a failure.
	ErrNoCandidateAvailable = errors.New("no candidate available")

	// ErrAssignmentConflict is returned when the bounded retry loop keeps
	// losing the optimistic status check to concurrent assignments.
	ErrAssignmentConflict = errors.New("assignment conflict")
)

// AssignRequestCommandHandler orchestrates courier assignment for a
// single request: it builds a fresh candidate pool, ranks it, and flips
// the request Pending to Assigned with an atomic conditional update,
// creating the mission in the same transaction.
//
// Example:
//
//	handler := NewAssignRequestCommandHandler(uowFactory, locator, distance, publisher)
//	m, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoCandidateAvailable):
//	    // nobody can take it now, the request stays pending
//	case errors.Is(err, ErrAssignmentConflict):
//	    // lost the race repeatedly, caller may retry later
//	case err != nil:
//	    // other failure
//	default:
//	    // m is the created mission
//	}
type AssignRequestCommandHandler struct {
	uowFactory DispatchUoWFactory
	locator    ports.CourierLocator
	distance   ports.DistanceProvider
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAssignRequestCommandHandler creates a handler for request assignment
// operations.
func NewAssignRequestCommandHandler(
	uowFactory DispatchUoWFactory,
	locator ports.CourierLocator,
	distance ports.DistanceProvider,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AssignRequestCommandHandler {
	return AssignRequestCommandHandler{
		uowFactory: uowFactory,
		locator:    locator,
		distance:   distance,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the assignment command and returns the created
// mission. On an optimistic-status conflict the whole attempt restarts
// from a freshly reloaded request, up to maxAssignAttempts, after which
// it fails with ErrAssignmentConflict.
func (h AssignRequestCommandHandler) Handle(
	ctx context.Context,
	command AssignRequestCommand,
) (*mission.Mission, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxAssignAttempts; attempt++ {
		m, err := h.assignOnce(ctx, command.RequestID())
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			continue
		}
		if err != nil {
			return nil, err
		}

		h.publishAssigned(ctx, m)
		return m, nil
	}

	return nil, ErrAssignmentConflict
}

// assignOnce runs one full assignment attempt in its own transaction.
func (h AssignRequestCommandHandler) assignOnce(
	ctx context.Context,
	requestID kernel.UUID,
) (*mission.Mission, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.RequestRepository()
	missionRepo := uow.MissionRepository()

	req, err := requestRepo.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status() != request.Pending {
		return nil, ErrRequestNotPending
	}

	candidates, err := h.buildCandidates(ctx, uow, req)
	if err != nil {
		return nil, err
	}

	selected, err := services.NewRequestDispatcher().SelectCourier(req, candidates)
	if errors.Is(err, services.ErrCourierNotFound) {
		return nil, ErrNoCandidateAvailable
	}
	if err != nil {
		return nil, err
	}

	// The pool snapshot may be stale by now; the invariant is re-checked
	// against the store before the mission is created.
	if _, err = missionRepo.GetActiveByCourier(ctx, selected.CourierID); err == nil {
		return nil, mission.ErrCourierBusy
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if err = req.Assign(selected.CourierID); err != nil {
		return nil, err
	}

	m, err := mission.NewMission(kernel.NewUUID(), req.ID(), selected.CourierID)
	if err != nil {
		return nil, err
	}

	if err = requestRepo.UpdateIfStatus(ctx, req, request.Pending); err != nil {
		return nil, err
	}

	if err = missionRepo.Add(ctx, m); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

// buildCandidates assembles the candidate pool from a fresh snapshot:
// available vehicles whose courier is not busy, has a last known
// location, and works at the request's scheduled time.
func (h AssignRequestCommandHandler) buildCandidates(
	ctx context.Context,
	uow DispatchUoW,
	req *request.Request,
) ([]services.Candidate, error) {
	vehicles, err := uow.VehicleRepository().GetAllAvailable(ctx)
	if err != nil {
		return nil, err
	}

	busyIDs, err := uow.MissionRepository().GetActiveCourierIDs(ctx)
	if err != nil {
		return nil, err
	}
	busy := make(map[kernel.UUID]struct{}, len(busyIDs))
	for _, id := range busyIDs {
		busy[id] = struct{}{}
	}

	scheduleRepo := uow.ScheduleRepository()
	candidates := make([]services.Candidate, 0, len(vehicles))
	for _, v := range vehicles {
		courierID := v.CourierID()
		if _, isBusy := busy[courierID]; isBusy {
			continue
		}

		sched, err := scheduleRepo.GetByCourier(ctx, courierID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			// No schedule means never available.
			continue
		}
		if err != nil {
			return nil, err
		}

		works, err := sched.WorksAt(req.ScheduledAt())
		if err != nil {
			return nil, err
		}
		if !works {
			continue
		}

		location, found, err := h.locator.LastKnownLocation(ctx, courierID)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		distanceKm, err := h.distance.DistanceKm(ctx, location, req.Pickup().Point())
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, services.Candidate{
			CourierID:  courierID,
			Vehicle:    v,
			DistanceKm: distanceKm,
		})
	}

	return candidates, nil
}

// publishAssigned emits the assignment event after the transaction has
// committed. Publish failures are logged and swallowed: notification
// delivery never rolls back a committed assignment.
func (h AssignRequestCommandHandler) publishAssigned(ctx context.Context, m *mission.Mission) {
	if err := h.publisher.PublishRequestAssigned(
		ctx, m.RequestID(), m.ID(), m.CourierID()); err != nil {
		h.logger.WarnContext(ctx, "publish request assigned event",
			"requestId", m.RequestID().String(),
			"missionId", m.ID().String(),
			"error", err)
	}
}
