package http

import "time"

// Error is the uniform error payload returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AssignResponse is returned after a successful assignment.
type AssignResponse struct {
	MissionID string `json:"missionId"`
	RequestID string `json:"requestId"`
	CourierID string `json:"courierId"`
}

// SweepResponse summarizes one dispatch sweep run.
type SweepResponse struct {
	Assigned int `json:"assigned"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// NotesRequest carries the courier notes for a mission.
type NotesRequest struct {
	Notes string `json:"notes"`
}

// QuoteRequest optionally names a discount code to apply to the quote.
type QuoteRequest struct {
	DiscountCode string `json:"discountCode,omitempty"`
}

// PriceRule is one applied line of a quote.
type PriceRule struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amountCents"`
}

// QuoteResponse is the itemized price quote for a request.
type QuoteResponse struct {
	BasePriceCents        int64       `json:"basePriceCents"`
	DistanceCostCents     int64       `json:"distanceCostCents"`
	WeightCostCents       int64       `json:"weightCostCents"`
	UrgencyFeeCents       int64       `json:"urgencyFeeCents"`
	PeakSurchargeCents    int64       `json:"peakSurchargeCents"`
	HolidaySurchargeCents int64       `json:"holidaySurchargeCents"`
	SubtotalCents         int64       `json:"subtotalCents"`
	DiscountCents         int64       `json:"discountCents"`
	TotalCents            int64       `json:"totalCents"`
	Rules                 []PriceRule `json:"rules"`
}

// AvailabilityResponse answers whether a courier works at a moment.
type AvailabilityResponse struct {
	CourierID string    `json:"courierId"`
	At        time.Time `json:"at"`
	Available bool      `json:"available"`
}

// AvailableCouriersResponse lists the candidate couriers working at a moment.
type AvailableCouriersResponse struct {
	At         time.Time `json:"at"`
	CourierIDs []string  `json:"courierIds"`
}

// UnfinishedRequest is one row of the unfinished-requests report.
type UnfinishedRequest struct {
	ID             string    `json:"id"`
	Status         string    `json:"status"`
	ScheduledAt    time.Time `json:"scheduledAt"`
	PickupAddress  string    `json:"pickupAddress"`
	DropoffAddress string    `json:"dropoffAddress"`
}
