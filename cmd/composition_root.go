package cmd

import (
	"log/slog"
	"time"

	"dispatch/internal/adapters/out/geo"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	locator   ports.CourierLocator
	distance  ports.DistanceProvider
	publisher ports.EventPublisher

	pricingEngine services.PricingEngine
	logger        *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) (CompositionRoot, error) {
	pricingEngine, err := services.NewPricingEngine(defaultPricingConfig())
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		locator:       geo.NewGormCourierLocator(gormDB),
		distance:      geo.NewHaversineDistanceProvider(),
		publisher:     publisher,
		pricingEngine: pricingEngine,
		logger:        logger,
	}, nil
}

// defaultPricingConfig is the tariff applied to every quote. Amounts are
// cents; the peak band covers the evening rush.
func defaultPricingConfig() services.PricingConfig {
	return services.PricingConfig{
		BasePriceCents:        500,
		PerKmCents:            120,
		PerKgCents:            15,
		UrgencyLead:           2 * time.Hour,
		UrgencyFeeCents:       400,
		PeakStartMinute:       17 * 60,
		PeakEndMinute:         20 * 60,
		PeakSurchargeCents:    300,
		Holidays: map[string]struct{}{
			"2026-01-01": {}, "2026-12-25": {},
			"2027-01-01": {}, "2027-12-25": {},
		},
		HolidaySurchargeCents: 600,
	}
}

func (c *CompositionRoot) CreateAssignRequestCommandHandler() commands.AssignRequestCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignRequestCommandHandler(f, c.locator, c.distance, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSweepPendingCommandHandler() commands.SweepPendingCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepPendingCommandHandler(f, c.CreateAssignRequestCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateStartMissionCommandHandler() commands.StartMissionCommandHandler {
	return commands.NewStartMissionCommandHandler(c.missionUoWFactory())
}

func (c *CompositionRoot) CreateCompleteMissionCommandHandler() commands.CompleteMissionCommandHandler {
	return commands.NewCompleteMissionCommandHandler(c.missionUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelMissionCommandHandler() commands.CancelMissionCommandHandler {
	return commands.NewCancelMissionCommandHandler(c.missionUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAddMissionNotesCommandHandler() commands.AddMissionNotesCommandHandler {
	return commands.NewAddMissionNotesCommandHandler(c.missionUoWFactory())
}

func (c *CompositionRoot) CreateQuotePriceQueryHandler() queries.QuotePriceQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewQuotePriceQueryHandler(
		uow.RequestRepository(),
		uow.DiscountRepository(),
		c.distance,
		c.pricingEngine,
	)
}

func (c *CompositionRoot) CreateCheckCourierAvailabilityQueryHandler() queries.CheckCourierAvailabilityQueryHandler {
	return queries.NewCheckCourierAvailabilityQueryHandler(c.uowFactory.Create().ScheduleRepository())
}

func (c *CompositionRoot) CreateFindAvailableCouriersQueryHandler() queries.FindAvailableCouriersQueryHandler {
	return queries.NewFindAvailableCouriersQueryHandler(c.uowFactory.Create().ScheduleRepository())
}

func (c *CompositionRoot) CreateGetUnfinishedRequestsQueryHandler() queries.GetUnfinishedRequestsQueryHandler {
	return queries.NewGetUnfinishedRequestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) missionUoWFactory() commands.MissionUoWFactory {
	return FuncMissionUoWFactory(func() commands.MissionUoW {
		return c.uowFactory.Create()
	})
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncMissionUoWFactory func() commands.MissionUoW

func (f FuncMissionUoWFactory) Create() commands.MissionUoW {
	return f()
}
