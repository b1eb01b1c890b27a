package components

import (
	"time"

	"court-scheduler/internal/domain/reservation"
	"court-scheduler/internal/pkg/clock"
	"court-scheduler/internal/pkg/config"
	"court-scheduler/internal/usecase/commands"
	"court-scheduler/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewScheduleLocation,
	fx.Annotate(
		reservation.NewDefaultPriceCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	reservation.NewFactory,
	NewMaintenanceOptions,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationUseCase,
		commands.NewCalendarUseCase,
		commands.NewMaintenanceUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewAvailabilityQueries,
		queries.NewCalendarQueries,
	),
)

// NewScheduleLocation is the wall-clock zone court dates and hours are read in.
func NewScheduleLocation(cfg config.Config) (*time.Location, error) {
	return cfg.Schedule.Location()
}

func NewMaintenanceOptions(cfg config.Config) commands.MaintenanceOptions {
	return commands.MaintenanceOptions{
		SweepBatch:      cfg.Jobs.SweepBatch,
		DispatchBatch:   cfg.Jobs.DispatchBatch,
		MaxAttempts:     cfg.Jobs.MaxAttempts,
		DeliveryTimeout: cfg.Jobs.DeliveryTimeout,
	}
}
