// Package http is the inbound HTTP adapter. It translates the REST
// surface into application commands and queries, and maps domain errors
// to HTTP status codes.
package http

import (
	"errors"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/discount"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	assignRequestHandler   commands.AssignRequestCommandHandler
	sweepPendingHandler    commands.SweepPendingCommandHandler
	startMissionHandler    commands.StartMissionCommandHandler
	completeMissionHandler commands.CompleteMissionCommandHandler
	cancelMissionHandler   commands.CancelMissionCommandHandler
	addMissionNotesHandler commands.AddMissionNotesCommandHandler

	// Query handlers
	quotePriceHandler            queries.QuotePriceQueryHandler
	checkAvailabilityHandler     queries.CheckCourierAvailabilityQueryHandler
	findAvailableCouriersHandler queries.FindAvailableCouriersQueryHandler
	getUnfinishedRequestsHandler queries.GetUnfinishedRequestsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	assignRequestHandler commands.AssignRequestCommandHandler,
	sweepPendingHandler commands.SweepPendingCommandHandler,
	startMissionHandler commands.StartMissionCommandHandler,
	completeMissionHandler commands.CompleteMissionCommandHandler,
	cancelMissionHandler commands.CancelMissionCommandHandler,
	addMissionNotesHandler commands.AddMissionNotesCommandHandler,
	quotePriceHandler queries.QuotePriceQueryHandler,
	checkAvailabilityHandler queries.CheckCourierAvailabilityQueryHandler,
	findAvailableCouriersHandler queries.FindAvailableCouriersQueryHandler,
	getUnfinishedRequestsHandler queries.GetUnfinishedRequestsQueryHandler,
) *Server {
	return &Server{
		assignRequestHandler:         assignRequestHandler,
		sweepPendingHandler:          sweepPendingHandler,
		startMissionHandler:          startMissionHandler,
		completeMissionHandler:       completeMissionHandler,
		cancelMissionHandler:         cancelMissionHandler,
		addMissionNotesHandler:       addMissionNotesHandler,
		quotePriceHandler:            quotePriceHandler,
		checkAvailabilityHandler:     checkAvailabilityHandler,
		findAvailableCouriersHandler: findAvailableCouriersHandler,
		getUnfinishedRequestsHandler: getUnfinishedRequestsHandler,
	}
}

// RegisterRoutes binds every endpoint under /api/v1 plus the health probe.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/requests/:id/assign", s.AssignRequest)
	v1.POST("/requests/:id/quote", s.QuotePrice)
	v1.GET("/requests/unfinished", s.GetUnfinishedRequests)
	v1.POST("/dispatch/sweep", s.SweepPending)
	v1.POST("/missions/:id/start", s.StartMission)
	v1.POST("/missions/:id/complete", s.CompleteMission)
	v1.POST("/missions/:id/cancel", s.CancelMission)
	v1.PUT("/missions/:id/notes", s.AddMissionNotes)
	v1.GET("/couriers/:id/availability", s.CheckCourierAvailability)
	v1.GET("/couriers/available", s.FindAvailableCouriers)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(nethttp.StatusOK, "Healthy")
}

// AssignRequest handles POST /api/v1/requests/{id}/assign - dispatches one
// pending request to the closest available courier.
func (s *Server) AssignRequest(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid request id: "+err.Error())
	}

	cmd, err := commands.NewAssignRequestCommand(requestID)
	if err != nil {
		return badRequest(ctx, "Invalid assign command: "+err.Error())
	}

	assigned, err := s.assignRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(nethttp.StatusOK, AssignResponse{
		MissionID: assigned.ID().String(),
		RequestID: assigned.RequestID().String(),
		CourierID: assigned.CourierID().String(),
	})
}

// SweepPending handles POST /api/v1/dispatch/sweep - runs the assignment
// workflow over every pending request.
func (s *Server) SweepPending(ctx echo.Context) error {
	cmd := commands.NewSweepPendingCommand()

	report, err := s.sweepPendingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(nethttp.StatusOK, SweepResponse{
		Assigned: report.Assigned,
		Skipped:  report.Skipped,
		Failed:   report.Failed,
	})
}

// StartMission handles POST /api/v1/missions/{id}/start.
func (s *Server) StartMission(ctx echo.Context) error {
	missionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid mission id: "+err.Error())
	}

	cmd, err := commands.NewStartMissionCommand(missionID)
	if err != nil {
		return badRequest(ctx, "Invalid start command: "+err.Error())
	}

	if handleErr := s.startMissionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(nethttp.StatusNoContent)
}

// CompleteMission handles POST /api/v1/missions/{id}/complete.
func (s *Server) CompleteMission(ctx echo.Context) error {
	missionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid mission id: "+err.Error())
	}

	cmd, err := commands.NewCompleteMissionCommand(missionID)
	if err != nil {
		return badRequest(ctx, "Invalid complete command: "+err.Error())
	}

	if handleErr := s.completeMissionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(nethttp.StatusNoContent)
}

// CancelMission handles POST /api/v1/missions/{id}/cancel.
func (s *Server) CancelMission(ctx echo.Context) error {
	missionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid mission id: "+err.Error())
	}

	cmd, err := commands.NewCancelMissionCommand(missionID)
	if err != nil {
		return badRequest(ctx, "Invalid cancel command: "+err.Error())
	}

	if handleErr := s.cancelMissionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(nethttp.StatusNoContent)
}

// AddMissionNotes handles PUT /api/v1/missions/{id}/notes.
func (s *Server) AddMissionNotes(ctx echo.Context) error {
	missionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid mission id: "+err.Error())
	}

	var body NotesRequest
	if bindErr := ctx.Bind(&body); bindErr != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddMissionNotesCommand(missionID, body.Notes)
	if err != nil {
		return badRequest(ctx, "Invalid notes command: "+err.Error())
	}

	if handleErr := s.addMissionNotesHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(nethttp.StatusNoContent)
}

// QuotePrice handles POST /api/v1/requests/{id}/quote - computes an
// itemized price quote, optionally applying a discount code.
func (s *Server) QuotePrice(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid request id: "+err.Error())
	}

	// The body is optional: quoting without a discount needs no payload.
	var body QuoteRequest
	if ctx.Request().ContentLength > 0 {
		if bindErr := ctx.Bind(&body); bindErr != nil {
			return badRequest(ctx, "Invalid request body")
		}
	}

	query, err := queries.NewQuotePriceQuery(requestID, body.DiscountCode)
	if err != nil {
		return badRequest(ctx, "Invalid quote query: "+err.Error())
	}

	breakdown, err := s.quotePriceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	rules := make([]PriceRule, len(breakdown.Rules))
	for i, rule := range breakdown.Rules {
		rules[i] = PriceRule{Name: rule.Name, AmountCents: rule.AmountCents}
	}

	return ctx.JSON(nethttp.StatusOK, QuoteResponse{
		BasePriceCents:        breakdown.BasePriceCents,
		DistanceCostCents:     breakdown.DistanceCostCents,
		WeightCostCents:       breakdown.WeightCostCents,
		UrgencyFeeCents:       breakdown.UrgencyFeeCents,
		PeakSurchargeCents:    breakdown.PeakSurchargeCents,
		HolidaySurchargeCents: breakdown.HolidaySurchargeCents,
		SubtotalCents:         breakdown.SubtotalCents,
		DiscountCents:         breakdown.DiscountCents,
		TotalCents:            breakdown.TotalCents,
		Rules:                 rules,
	})
}

// CheckCourierAvailability handles GET /api/v1/couriers/{id}/availability?at=
func (s *Server) CheckCourierAvailability(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id: "+err.Error())
	}

	at, err := parseAtParam(ctx.QueryParam("at"))
	if err != nil {
		return badRequest(ctx, "Invalid at parameter: "+err.Error())
	}

	query, err := queries.NewCheckCourierAvailabilityQuery(courierID, at)
	if err != nil {
		return badRequest(ctx, "Invalid availability query: "+err.Error())
	}

	available, err := s.checkAvailabilityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(nethttp.StatusOK, AvailabilityResponse{
		CourierID: courierID.String(),
		At:        at,
		Available: available,
	})
}

// FindAvailableCouriers handles GET /api/v1/couriers/available?at=&ids=
// where ids is a comma-separated list of candidate courier UUIDs.
func (s *Server) FindAvailableCouriers(ctx echo.Context) error {
	at, err := parseAtParam(ctx.QueryParam("at"))
	if err != nil {
		return badRequest(ctx, "Invalid at parameter: "+err.Error())
	}

	candidateIDs, err := parseIDList(ctx.QueryParam("ids"))
	if err != nil {
		return badRequest(ctx, "Invalid ids parameter: "+err.Error())
	}

	query, err := queries.NewFindAvailableCouriersQuery(at, candidateIDs)
	if err != nil {
		return badRequest(ctx, "Invalid couriers query: "+err.Error())
	}

	available, err := s.findAvailableCouriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	ids := make([]string, len(available))
	for i, id := range available {
		ids[i] = id.String()
	}

	return ctx.JSON(nethttp.StatusOK, AvailableCouriersResponse{At: at, CourierIDs: ids})
}

// GetUnfinishedRequests handles GET /api/v1/requests/unfinished.
func (s *Server) GetUnfinishedRequests(ctx echo.Context) error {
	query := queries.NewGetUnfinishedRequestsQuery()

	unfinished, err := s.getUnfinishedRequestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	response := make([]UnfinishedRequest, len(unfinished))
	for i, row := range unfinished {
		response[i] = UnfinishedRequest{
			ID:             row.ID.String(),
			Status:         row.Status.String(),
			ScheduledAt:    row.ScheduledAt,
			PickupAddress:  row.PickupAddress,
			DropoffAddress: row.DropoffAddress,
		}
	}

	return ctx.JSON(nethttp.StatusOK, response)
}

func parseAtParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("at is required, RFC3339 expected")
	}
	return time.Parse(time.RFC3339, raw)
}

func parseIDList(raw string) ([]kernel.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]kernel.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := kernel.UUIDFromString(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(nethttp.StatusBadRequest, Error{
		Code:    nethttp.StatusBadRequest,
		Message: message,
	})
}

// mapDomainError translates application and domain errors into HTTP
// status codes: missing objects are 404, state conflicts are 409, an
// empty candidate pool or unusable discount is 422, everything else 500.
func mapDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(nethttp.StatusNotFound, Error{
			Code:    nethttp.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrRequestNotPending),
		errors.Is(err, mission.ErrInvalidTransition),
		errors.Is(err, mission.ErrCourierBusy),
		errors.Is(err, commands.ErrAssignmentConflict):
		return ctx.JSON(nethttp.StatusConflict, Error{
			Code:    nethttp.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrNoCandidateAvailable),
		errors.Is(err, discount.ErrDiscountInvalid):
		return ctx.JSON(nethttp.StatusUnprocessableEntity, Error{
			Code:    nethttp.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(nethttp.StatusInternalServerError, Error{
			Code:    nethttp.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
