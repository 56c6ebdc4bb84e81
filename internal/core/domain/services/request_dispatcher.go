package services

import (
	"errors"
	"math"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/domain/model/vehicle"
)

// ErrCourierNotFound is returned when no suitable courier exists for a
// request. This occurs when the candidate pool is empty or none of the
// candidates' vehicles can carry the request's load.
var ErrCourierNotFound = errors.New("courier not found")

// Candidate is one courier considered for a request: the courier's
// vehicle and the distance from the courier's last known location to the
// request's pickup point. Candidates are built by the caller from a fresh
// snapshot; the dispatcher holds no state between calls.
type Candidate struct {
	CourierID  kernel.UUID
	Vehicle    *vehicle.Vehicle
	DistanceKm float64
}

// RequestDispatcher is a domain service that selects the best courier for
// a delivery request.
//
// Selection is deterministic: candidates whose vehicle is below the
// requested class or cannot carry the load are dropped, the rest are
// ranked by ascending distance to pickup, ties broken by earliest
// vehicle registration time and then by courier identifier order.
//
// Example usage:
//
//	dispatcher := services.NewRequestDispatcher()
//	selected, err := dispatcher.SelectCourier(req, candidates)
//	if errors.Is(err, services.ErrCourierNotFound) {
//	    // no candidate can serve the request, a normal outcome
//	    return
//	}
type RequestDispatcher struct{}

// NewRequestDispatcher creates a new RequestDispatcher instance.
func NewRequestDispatcher() RequestDispatcher {
	return RequestDispatcher{}
}

// SelectCourier picks the best candidate for the given request. It fails
// with ErrCourierNotFound when no candidate's vehicle matches the
// requested class and can carry the load; guarding against non-pending
// requests is the caller's concern.
func (d RequestDispatcher) SelectCourier(
	req *request.Request,
	candidates []Candidate,
) (Candidate, error) {
	if err := req.Validate(); err != nil {
		return Candidate{}, err
	}

	var (
		best     Candidate
		found    bool
		bestDist = math.MaxFloat64
	)

	load := req.Load()
	for _, c := range candidates {
		if err := c.CourierID.Validate(); err != nil {
			return Candidate{}, err
		}
		if err := c.Vehicle.Validate(); err != nil {
			return Candidate{}, err
		}

		if !c.Vehicle.Class().Satisfies(req.VehicleClass()) {
			continue
		}
		if !c.Vehicle.CanCarry(load.WeightGrams(), load.VolumeCm3()) {
			continue
		}

		if !found || d.ranksBefore(c, best, bestDist) {
			best = c
			bestDist = c.DistanceKm
			found = true
		}
	}

	if !found {
		return Candidate{}, ErrCourierNotFound
	}

	return best, nil
}

// ranksBefore reports whether candidate c outranks the current best.
// Distance decides; ties fall to the earlier vehicle registration, then
// to the lower courier identifier.
func (d RequestDispatcher) ranksBefore(c, best Candidate, bestDist float64) bool {
	if c.DistanceKm != bestDist {
		return c.DistanceKm < bestDist
	}

	cReg := c.Vehicle.RegisteredAt()
	bestReg := best.Vehicle.RegisteredAt()
	if !cReg.Equal(bestReg) {
		return cReg.Before(bestReg)
	}

	return c.CourierID.String() < best.CourierID.String()
}
