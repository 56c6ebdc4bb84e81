package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/domain/model/schedule"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Tuesday afternoon; the working schedules below cover it.
var testScheduledAt = time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPendingRequest(t *testing.T) *request.Request {
	t.Helper()

	pickupPoint, err := kernel.NewGeoPoint(48.8584, 2.2945)
	require.NoError(t, err)
	dropoffPoint, err := kernel.NewGeoPoint(48.8606, 2.3376)
	require.NoError(t, err)
	pickup, err := request.NewWaypoint(pickupPoint, "5 Avenue Anatole France")
	require.NoError(t, err)
	dropoff, err := request.NewWaypoint(dropoffPoint, "Rue de Rivoli")
	require.NoError(t, err)
	load, err := request.NewLoad(30_000, 0, "pallet")
	require.NoError(t, err)

	req, err := request.NewRequest(
		kernel.NewUUID(), kernel.NewUUID(),
		pickup, dropoff, load, vehicle.ClassCar, testScheduledAt)
	require.NoError(t, err)
	return req
}

func newCourierVehicle(t *testing.T, courierID kernel.UUID, maxWeightGrams int) *vehicle.Vehicle {
	t.Helper()

	v, err := vehicle.NewVehicle(
		kernel.NewUUID(), courierID, vehicle.ClassCar,
		maxWeightGrams, 1_000_000, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return v
}

func newWorkingSchedule(t *testing.T, courierID kernel.UUID) *schedule.Schedule {
	t.Helper()

	window, err := schedule.NewWindow(9*60, 18*60)
	require.NoError(t, err)
	s, err := schedule.NewSchedule(courierID, map[time.Weekday]schedule.Window{
		testScheduledAt.Weekday(): window,
	}, nil, nil)
	require.NoError(t, err)
	return s
}

// assignFixture wires the mocks an assignment attempt touches.
type assignFixture struct {
	factory     *MockDispatchUoWFactory
	uow         *MockDispatchUoW
	requestRepo *MockRequestRepository
	missionRepo *MockMissionRepository
	vehicleRepo *MockVehicleRepository
	schedRepo   *MockScheduleRepository
	locator     *MockCourierLocator
	distance    *MockDistanceProvider
	publisher   *MockEventPublisher
}

func newAssignFixture(ctx context.Context) *assignFixture {
	f := &assignFixture{
		factory:     new(MockDispatchUoWFactory),
		uow:         new(MockDispatchUoW),
		requestRepo: new(MockRequestRepository),
		missionRepo: new(MockMissionRepository),
		vehicleRepo: new(MockVehicleRepository),
		schedRepo:   new(MockScheduleRepository),
		locator:     new(MockCourierLocator),
		distance:    new(MockDistanceProvider),
		publisher:   new(MockEventPublisher),
	}

	f.factory.On("Create").Return(f.uow)
	f.uow.On("Begin", ctx).Return(nil)
	f.uow.On("Rollback", ctx).Return(nil)
	f.uow.On("RequestRepository").Return(f.requestRepo)
	f.uow.On("MissionRepository").Return(f.missionRepo)
	f.uow.On("VehicleRepository").Return(f.vehicleRepo)
	f.uow.On("ScheduleRepository").Return(f.schedRepo)

	return f
}

func (f *assignFixture) handler() commands.AssignRequestCommandHandler {
	return commands.NewAssignRequestCommandHandler(
		f.factory, f.locator, f.distance, f.publisher, discardLogger())
}

func TestAssignRequestCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	req := newPendingRequest(t)
	courierID := kernel.NewUUID()
	v := newCourierVehicle(t, courierID, 50_000)
	sched := newWorkingSchedule(t, courierID)
	location, _ := kernel.NewGeoPoint(48.85, 2.29)

	f := newAssignFixture(ctx)
	f.requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once()
	f.vehicleRepo.On("GetAllAvailable", ctx).Return([]*vehicle.Vehicle{v}, nil).Once()
	f.missionRepo.On("GetActiveCourierIDs", ctx).Return([]kernel.UUID{}, nil).Once()
	f.schedRepo.On("GetByCourier", ctx, courierID).Return(sched, nil).Once()
	f.locator.On("LastKnownLocation", ctx, courierID).Return(location, true, nil).Once()
	f.distance.On("DistanceKm", ctx, location, req.Pickup().Point()).Return(4.0, nil).Once()
	f.missionRepo.On("GetActiveByCourier", ctx, courierID).Return(nil, errs.ErrObjectNotFound).Once()
	f.requestRepo.On("UpdateIfStatus", ctx, req, request.Pending).Return(nil).Once()
	f.missionRepo.On("Add", ctx, mock.AnythingOfType("*mission.Mission")).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishRequestAssigned", ctx, req.ID(), mock.Anything, courierID).Return(nil).Once()

	cmd, err := commands.NewAssignRequestCommand(req.ID())
	require.NoError(t, err)

	m, err := f.handler().Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, courierID, m.CourierID())
	assert.Equal(t, req.ID(), m.RequestID())
	assert.Equal(t, mission.Pending, m.Status())
	assert.Equal(t, request.Assigned, req.Status())

	f.requestRepo.AssertExpectations(t)
	f.missionRepo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestAssignRequestCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(ctx)

	_, err := f.handler().Handle(ctx, commands.AssignRequestCommand{})

	require.ErrorIs(t, err, commands.ErrAssignRequestCommandIsNotConstructed)
	f.factory.AssertNotCalled(t, "Create")
}

func TestAssignRequestCommandHandler_Handle_RequestNotPending(t *testing.T) {
	ctx := t.Context()
	pending := newPendingRequest(t)
	courierID := kernel.NewUUID()
	require.NoError(t, pending.Assign(courierID))

	f := newAssignFixture(ctx)
	f.requestRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once()

	cmd, err := commands.NewAssignRequestCommand(pending.ID())
	require.NoError(t, err)

	_, err = f.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrRequestNotPending)
	f.uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAssignRequestCommandHandler_Handle_NoCandidateAvailable(t *testing.T) {
	ctx := t.Context()
	req := newPendingRequest(t)

	f := newAssignFixture(ctx)
	f.requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once()
	f.vehicleRepo.On("GetAllAvailable", ctx).Return([]*vehicle.Vehicle{}, nil).Once()
	f.missionRepo.On("GetActiveCourierIDs", ctx).Return([]kernel.UUID{}, nil).Once()

	cmd, err := commands.NewAssignRequestCommand(req.ID())
	require.NoError(t, err)

	_, err = f.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoCandidateAvailable)
	assert.Equal(t, request.Pending, req.Status())
}

func TestAssignRequestCommandHandler_Handle_BusyCourierExcluded(t *testing.T) {
	ctx := t.Context()
	req := newPendingRequest(t)
	courierID := kernel.NewUUID()
	v := newCourierVehicle(t, courierID, 50_000)

	f := newAssignFixture(ctx)
	f.requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once()
	f.vehicleRepo.On("GetAllAvailable", ctx).Return([]*vehicle.Vehicle{v}, nil).Once()
	f.missionRepo.On("GetActiveCourierIDs", ctx).Return([]kernel.UUID{courierID}, nil).Once()

	cmd, err := commands.NewAssignRequestCommand(req.ID())
	require.NoError(t, err)

	_, err = f.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoCandidateAvailable)
	f.schedRepo.AssertNotCalled(t, "GetByCourier", ctx, courierID)
}

func TestAssignRequestCommandHandler_Handle_CourierWithoutLocationExcluded(t *testing.T) {
	ctx := t.Context()
	req := newPendingRequest(t)
	courierID := kernel.NewUUID()
	v := newCourierVehicle(t, courierID, 50_000)
	sched := newWorkingSchedule(t, courierID)

	f := newAssignFixture(ctx)
	f.requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once()
	f.vehicleRepo.On("GetAllAvailable", ctx).Return([]*vehicle.Vehicle{v}, nil).Once()
	f.missionRepo.On("GetActiveCourierIDs", ctx).Return([]kernel.UUID{}, nil).Once()
	f.schedRepo.On("GetByCourier", ctx, courierID).Return(sched, nil).Once()
	f.locator.On("LastKnownLocation", ctx, courierID).Return(kernel.GeoPoint{}, false, nil).Once()

	cmd, err := commands.NewAssignRequestCommand(req.ID())
	require.NoError(t, err)

	_, err = f.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoCandidateAvailable)
}

func TestAssignRequestCommandHandler_Handle_CourierWithoutScheduleExcluded(t *testing.T) {
	ctx := t.Context()
	req := newPendingRequest(t)
	courierID := kernel.NewUUID()
	v := newCourierVehicle(t, courierID, 50_000)

	f := newAssignFixture(ctx)
	f.requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once()
	f.vehicleRepo.On("GetAllAvailable", ctx).Return([]*vehicle.Vehicle{v}, nil).Once()
	f.missionRepo.On("GetActiveCourierIDs", ctx).Return([]kernel.UUID{}, nil).Once()
	f.schedRepo.On("GetByCourier", ctx, courierID).Return(nil, errs.ErrObjectNotFound).Once()

	cmd, err := commands.NewAssignRequestCommand(req.ID())
	require.NoError(t, err)

	_, err = f.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoCandidateAvailable)
}

func TestAssignRequestCommandHandler_Handle_MalformedScheduleWindow(t *testing.T) {
	ctx := t.Context()
	req := newPendingRequest(t)
	courierID := kernel.NewUUID()
	v := newCourierVehicle(t, courierID, 50_000)

	wrapping, err := schedule.NewWindow(18*60, 9*60)
	require.NoError(t, err)
	sched, err := schedule.NewSchedule(courierID, map[time.Weekday]schedule.Window{
		testScheduledAt.Weekday(): wrapping,
	}, nil, nil)
	require.NoError(t, err)

	f := newAssignFixture(ctx)
	f.requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once()
	f.vehicleRepo.On("GetAllAvailable", ctx).Return([]*vehicle.Vehicle{v}, nil).Once()
	f.missionRepo.On("GetActiveCourierIDs", ctx).Return([]kernel.UUID{}, nil).Once()
	f.schedRepo.On("GetByCourier", ctx, courierID).Return(sched, nil).Once()

	cmd, err := commands.NewAssignRequestCommand(req.ID())
	require.NoError(t, err)

	_, err = f.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, schedule.ErrMalformedWindow)
}

func TestAssignRequestCommandHandler_Handle_BusyRecheck(t *testing.T) {
	ctx := t.Context()
	req := newPendingRequest(t)
	courierID := kernel.NewUUID()
	v := newCourierVehicle(t, courierID, 50_000)
	sched := newWorkingSchedule(t, courierID)
	location, _ := kernel.NewGeoPoint(48.85, 2.29)

	active, err := mission.NewMission(kernel.NewUUID(), kernel.NewUUID(), courierID)
	require.NoError(t, err)

	f := newAssignFixture(ctx)
	f.requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once()
	f.vehicleRepo.On("GetAllAvailable", ctx).Return([]*vehicle.Vehicle{v}, nil).Once()
	f.missionRepo.On("GetActiveCourierIDs", ctx).Return([]kernel.UUID{}, nil).Once()
	f.schedRepo.On("GetByCourier", ctx, courierID).Return(sched, nil).Once()
	f.locator.On("LastKnownLocation", ctx, courierID).Return(location, true, nil).Once()
	f.distance.On("DistanceKm", ctx, location, req.Pickup().Point()).Return(4.0, nil).Once()
	f.missionRepo.On("GetActiveByCourier", ctx, courierID).Return(active, nil).Once()

	cmd, err := commands.NewAssignRequestCommand(req.ID())
	require.NoError(t, err)

	_, err = f.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, mission.ErrCourierBusy)
	f.uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAssignRequestCommandHandler_Handle_ConflictRetriesExhausted(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	v := newCourierVehicle(t, courierID, 50_000)
	sched := newWorkingSchedule(t, courierID)
	location, _ := kernel.NewGeoPoint(48.85, 2.29)

	// Every attempt reloads a fresh pending snapshot; each loses the
	// conditional update.
	first := newPendingRequest(t)
	requestID := first.ID()

	f := newAssignFixture(ctx)
	f.requestRepo.On("Get", ctx, requestID).Return(first, nil).Once()
	for i := 0; i < 2; i++ {
		f.requestRepo.On("Get", ctx, requestID).Return(newPendingRequest(t), nil).Once()
	}
	f.vehicleRepo.On("GetAllAvailable", ctx).Return([]*vehicle.Vehicle{v}, nil)
	f.missionRepo.On("GetActiveCourierIDs", ctx).Return([]kernel.UUID{}, nil)
	f.schedRepo.On("GetByCourier", ctx, courierID).Return(sched, nil)
	f.locator.On("LastKnownLocation", ctx, courierID).Return(location, true, nil)
	f.distance.On("DistanceKm", ctx, location, mock.Anything).Return(4.0, nil)
	f.missionRepo.On("GetActiveByCourier", ctx, courierID).Return(nil, errs.ErrObjectNotFound)
	f.requestRepo.On("UpdateIfStatus", ctx, mock.Anything, request.Pending).
		Return(errs.NewVersionIsInvalidErrorWithCause("request"))

	cmd, err := commands.NewAssignRequestCommand(requestID)
	require.NoError(t, err)

	_, err = f.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrAssignmentConflict)
	f.factory.AssertNumberOfCalls(t, "Create", 3)
	f.uow.AssertNotCalled(t, "Commit", ctx)
	f.publisher.AssertNotCalled(t, "PublishRequestAssigned",
		ctx, mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignRequestCommandHandler_Handle_InsertRaceRetriesWithoutCourier(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	v := newCourierVehicle(t, courierID, 50_000)
	sched := newWorkingSchedule(t, courierID)
	location, _ := kernel.NewGeoPoint(48.85, 2.29)

	// Two assignments race for the same courier: both pass the in-
	// transaction busy check, but the store admits only one active
	// mission per courier, so the losing insert comes back as a version
	// conflict. The retry rebuilds the pool, now sees the courier busy,
	// and ends with an empty pool instead of a double booking.
	first := newPendingRequest(t)
	requestID := first.ID()

	f := newAssignFixture(ctx)
	f.requestRepo.On("Get", ctx, requestID).Return(first, nil).Once()
	f.requestRepo.On("Get", ctx, requestID).Return(newPendingRequest(t), nil).Once()
	f.vehicleRepo.On("GetAllAvailable", ctx).Return([]*vehicle.Vehicle{v}, nil).Twice()
	f.missionRepo.On("GetActiveCourierIDs", ctx).Return([]kernel.UUID{}, nil).Once()
	f.missionRepo.On("GetActiveCourierIDs", ctx).Return([]kernel.UUID{courierID}, nil).Once()
	f.schedRepo.On("GetByCourier", ctx, courierID).Return(sched, nil).Once()
	f.locator.On("LastKnownLocation", ctx, courierID).Return(location, true, nil).Once()
	f.distance.On("DistanceKm", ctx, location, mock.Anything).Return(4.0, nil).Once()
	f.missionRepo.On("GetActiveByCourier", ctx, courierID).Return(nil, errs.ErrObjectNotFound).Once()
	f.requestRepo.On("UpdateIfStatus", ctx, mock.Anything, request.Pending).Return(nil).Once()
	f.missionRepo.On("Add", ctx, mock.AnythingOfType("*mission.Mission")).
		Return(errs.NewVersionIsInvalidErrorWithCause("courier active mission")).Once()

	cmd, err := commands.NewAssignRequestCommand(requestID)
	require.NoError(t, err)

	_, err = f.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoCandidateAvailable)
	f.factory.AssertNumberOfCalls(t, "Create", 2)
	f.uow.AssertNotCalled(t, "Commit", ctx)
	f.publisher.AssertNotCalled(t, "PublishRequestAssigned",
		ctx, mock.Anything, mock.Anything, mock.Anything)
	f.missionRepo.AssertExpectations(t)
}

func TestAssignRequestCommandHandler_Handle_PublishFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()
	req := newPendingRequest(t)
	courierID := kernel.NewUUID()
	v := newCourierVehicle(t, courierID, 50_000)
	sched := newWorkingSchedule(t, courierID)
	location, _ := kernel.NewGeoPoint(48.85, 2.29)

	f := newAssignFixture(ctx)
	f.requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once()
	f.vehicleRepo.On("GetAllAvailable", ctx).Return([]*vehicle.Vehicle{v}, nil).Once()
	f.missionRepo.On("GetActiveCourierIDs", ctx).Return([]kernel.UUID{}, nil).Once()
	f.schedRepo.On("GetByCourier", ctx, courierID).Return(sched, nil).Once()
	f.locator.On("LastKnownLocation", ctx, courierID).Return(location, true, nil).Once()
	f.distance.On("DistanceKm", ctx, location, req.Pickup().Point()).Return(4.0, nil).Once()
	f.missionRepo.On("GetActiveByCourier", ctx, courierID).Return(nil, errs.ErrObjectNotFound).Once()
	f.requestRepo.On("UpdateIfStatus", ctx, req, request.Pending).Return(nil).Once()
	f.missionRepo.On("Add", ctx, mock.AnythingOfType("*mission.Mission")).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishRequestAssigned", ctx, req.ID(), mock.Anything, courierID).
		Return(errors.New("broker unreachable")).Once()

	cmd, err := commands.NewAssignRequestCommand(req.ID())
	require.NoError(t, err)

	m, err := f.handler().Handle(ctx, cmd)

	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestAssignRequestCommandHandler_Handle_ClosestCourierWins(t *testing.T) {
	ctx := t.Context()
	req := newPendingRequest(t)
	nearID := kernel.NewUUID()
	farID := kernel.NewUUID()
	nearVehicle := newCourierVehicle(t, nearID, 50_000)
	farVehicle := newCourierVehicle(t, farID, 50_000)
	location, _ := kernel.NewGeoPoint(48.85, 2.29)

	f := newAssignFixture(ctx)
	f.requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once()
	f.vehicleRepo.On("GetAllAvailable", ctx).
		Return([]*vehicle.Vehicle{farVehicle, nearVehicle}, nil).Once()
	f.missionRepo.On("GetActiveCourierIDs", ctx).Return([]kernel.UUID{}, nil).Once()
	f.schedRepo.On("GetByCourier", ctx, nearID).Return(newWorkingSchedule(t, nearID), nil).Once()
	f.schedRepo.On("GetByCourier", ctx, farID).Return(newWorkingSchedule(t, farID), nil).Once()
	f.locator.On("LastKnownLocation", ctx, mock.Anything).Return(location, true, nil)
	f.distance.On("DistanceKm", ctx, location, req.Pickup().Point()).Return(9.0, nil).Once()
	f.distance.On("DistanceKm", ctx, location, req.Pickup().Point()).Return(4.0, nil).Once()
	f.missionRepo.On("GetActiveByCourier", ctx, nearID).Return(nil, errs.ErrObjectNotFound).Once()
	f.requestRepo.On("UpdateIfStatus", ctx, req, request.Pending).Return(nil).Once()
	f.missionRepo.On("Add", ctx, mock.AnythingOfType("*mission.Mission")).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishRequestAssigned", ctx, req.ID(), mock.Anything, nearID).Return(nil).Once()

	cmd, err := commands.NewAssignRequestCommand(req.ID())
	require.NoError(t, err)

	m, err := f.handler().Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, nearID, m.CourierID())
}
