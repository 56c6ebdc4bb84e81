package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T, weightGrams, volumeCm3 int) *request.Request {
	t.Helper()
	return newRequestWith(t, weightGrams, volumeCm3,
		time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC))
}

func newTestRequestScheduledAt(t *testing.T, scheduledAt time.Time) *request.Request {
	t.Helper()
	return newRequestWith(t, 30_000, 0, scheduledAt)
}

func newRequestWith(t *testing.T, weightGrams, volumeCm3 int, scheduledAt time.Time) *request.Request {
	t.Helper()

	pickupPoint, err := kernel.NewGeoPoint(48.8584, 2.2945)
	require.NoError(t, err)
	dropoffPoint, err := kernel.NewGeoPoint(48.8606, 2.3376)
	require.NoError(t, err)
	pickup, err := request.NewWaypoint(pickupPoint, "5 Avenue Anatole France")
	require.NoError(t, err)
	dropoff, err := request.NewWaypoint(dropoffPoint, "Rue de Rivoli")
	require.NoError(t, err)
	load, err := request.NewLoad(weightGrams, volumeCm3, "parcel")
	require.NoError(t, err)

	req, err := request.NewRequest(
		kernel.NewUUID(), kernel.NewUUID(),
		pickup, dropoff, load, vehicle.ClassCar, scheduledAt)
	require.NoError(t, err)
	return req
}

func newTestCandidate(
	t *testing.T,
	maxWeightGrams, maxVolumeCm3 int,
	registeredAt time.Time,
	distanceKm float64,
) services.Candidate {
	t.Helper()

	courierID := kernel.NewUUID()
	v, err := vehicle.NewVehicle(
		kernel.NewUUID(), courierID, vehicle.ClassCar,
		maxWeightGrams, maxVolumeCm3, registeredAt)
	require.NoError(t, err)

	return services.Candidate{CourierID: courierID, Vehicle: v, DistanceKm: distanceKm}
}

func newClassCandidate(
	t *testing.T,
	class vehicle.Class,
	registeredAt time.Time,
	distanceKm float64,
) services.Candidate {
	t.Helper()

	courierID := kernel.NewUUID()
	v, err := vehicle.NewVehicle(
		kernel.NewUUID(), courierID, class,
		50_000, 1_000_000, registeredAt)
	require.NoError(t, err)

	return services.Candidate{CourierID: courierID, Vehicle: v, DistanceKm: distanceKm}
}

func TestRequestDispatcher_SelectCourier(t *testing.T) {
	dispatcher := services.NewRequestDispatcher()
	registeredAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("selects the closest capable candidate", func(t *testing.T) {
		// 30kg request against 50kg vehicles; the 4km candidate wins.
		req := newTestRequest(t, 30_000, 0)
		far := newTestCandidate(t, 50_000, 1_000_000, registeredAt, 9)
		near := newTestCandidate(t, 50_000, 1_000_000, registeredAt, 4)

		selected, err := dispatcher.SelectCourier(req, []services.Candidate{far, near})

		require.NoError(t, err)
		assert.Equal(t, near.CourierID, selected.CourierID)
	})

	t.Run("skips candidates whose vehicle cannot carry the load", func(t *testing.T) {
		req := newTestRequest(t, 30_000, 0)
		tooSmall := newTestCandidate(t, 10_000, 1_000_000, registeredAt, 1)
		capable := newTestCandidate(t, 50_000, 1_000_000, registeredAt, 8)

		selected, err := dispatcher.SelectCourier(req, []services.Candidate{tooSmall, capable})

		require.NoError(t, err)
		assert.Equal(t, capable.CourierID, selected.CourierID)
	})

	t.Run("skips unavailable vehicles", func(t *testing.T) {
		req := newTestRequest(t, 30_000, 0)
		parked := newTestCandidate(t, 50_000, 1_000_000, registeredAt, 1)
		parked.Vehicle.SetAvailability(false)
		capable := newTestCandidate(t, 50_000, 1_000_000, registeredAt, 8)

		selected, err := dispatcher.SelectCourier(req, []services.Candidate{parked, capable})

		require.NoError(t, err)
		assert.Equal(t, capable.CourierID, selected.CourierID)
	})

	t.Run("skips vehicles below the requested class", func(t *testing.T) {
		// The request asks for a car; the closer bike never qualifies
		// even though it could carry the weight.
		req := newTestRequest(t, 3_000, 0)
		bike := newClassCandidate(t, vehicle.ClassBike, registeredAt, 1)
		car := newClassCandidate(t, vehicle.ClassCar, registeredAt, 8)

		selected, err := dispatcher.SelectCourier(req, []services.Candidate{bike, car})

		require.NoError(t, err)
		assert.Equal(t, car.CourierID, selected.CourierID)
	})

	t.Run("larger class serves a smaller request", func(t *testing.T) {
		req := newTestRequest(t, 30_000, 0)
		van := newClassCandidate(t, vehicle.ClassVan, registeredAt, 3)

		selected, err := dispatcher.SelectCourier(req, []services.Candidate{van})

		require.NoError(t, err)
		assert.Equal(t, van.CourierID, selected.CourierID)
	})

	t.Run("only undersized classes yields ErrCourierNotFound", func(t *testing.T) {
		req := newTestRequest(t, 3_000, 0)
		bike := newClassCandidate(t, vehicle.ClassBike, registeredAt, 1)
		motorbike := newClassCandidate(t, vehicle.ClassMotorbike, registeredAt, 2)

		_, err := dispatcher.SelectCourier(req, []services.Candidate{bike, motorbike})

		assert.ErrorIs(t, err, services.ErrCourierNotFound)
	})

	t.Run("distance tie falls to the earlier vehicle registration", func(t *testing.T) {
		req := newTestRequest(t, 30_000, 0)
		veteran := newTestCandidate(t, 50_000, 1_000_000, registeredAt, 5)
		rookie := newTestCandidate(t, 50_000, 1_000_000, registeredAt.AddDate(0, 6, 0), 5)

		selected, err := dispatcher.SelectCourier(req, []services.Candidate{rookie, veteran})

		require.NoError(t, err)
		assert.Equal(t, veteran.CourierID, selected.CourierID)
	})

	t.Run("full tie falls to the lower courier identifier", func(t *testing.T) {
		req := newTestRequest(t, 30_000, 0)
		a := newTestCandidate(t, 50_000, 1_000_000, registeredAt, 5)
		b := newTestCandidate(t, 50_000, 1_000_000, registeredAt, 5)

		expected := a
		if b.CourierID.String() < a.CourierID.String() {
			expected = b
		}

		selected, err := dispatcher.SelectCourier(req, []services.Candidate{a, b})

		require.NoError(t, err)
		assert.Equal(t, expected.CourierID, selected.CourierID)
	})

	t.Run("selection order is independent of input order", func(t *testing.T) {
		req := newTestRequest(t, 30_000, 0)
		a := newTestCandidate(t, 50_000, 1_000_000, registeredAt, 3)
		b := newTestCandidate(t, 50_000, 1_000_000, registeredAt, 7)

		first, err := dispatcher.SelectCourier(req, []services.Candidate{a, b})
		require.NoError(t, err)
		second, err := dispatcher.SelectCourier(req, []services.Candidate{b, a})
		require.NoError(t, err)

		assert.Equal(t, first.CourierID, second.CourierID)
	})

	t.Run("empty pool yields ErrCourierNotFound", func(t *testing.T) {
		req := newTestRequest(t, 30_000, 0)

		_, err := dispatcher.SelectCourier(req, nil)

		assert.ErrorIs(t, err, services.ErrCourierNotFound)
	})

	t.Run("no capable candidate yields ErrCourierNotFound", func(t *testing.T) {
		req := newTestRequest(t, 30_000, 0)
		tooSmall := newTestCandidate(t, 10_000, 1_000_000, registeredAt, 1)

		_, err := dispatcher.SelectCourier(req, []services.Candidate{tooSmall})

		assert.ErrorIs(t, err, services.ErrCourierNotFound)
	})

	t.Run("volume check skipped when request volume is unknown", func(t *testing.T) {
		req := newTestRequest(t, 30_000, 0)
		smallBox := newTestCandidate(t, 50_000, 100, registeredAt, 2)

		selected, err := dispatcher.SelectCourier(req, []services.Candidate{smallBox})

		require.NoError(t, err)
		assert.Equal(t, smallBox.CourierID, selected.CourierID)
	})

	t.Run("invalid request is rejected", func(t *testing.T) {
		var req request.Request

		_, err := dispatcher.SelectCourier(&req, nil)

		assert.Error(t, err)
	})
}
