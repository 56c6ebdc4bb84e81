// Package schedulerepo provides data transfer objects and mapping functions
// for availability schedule persistence. A schedule is stored relationally
// across three tables, all keyed by courier; Put replaces the whole set.
package schedulerepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/schedule"

	"github.com/google/uuid"
)

// WeeklyWindowDTO is one weekday's working window in the recurring pattern.
type WeeklyWindowDTO struct {
	CourierID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Weekday     int       `gorm:"primaryKey"`
	StartMinute int
	EndMinute   int
}

// TableName specifies the database table name for weekly windows.
func (WeeklyWindowDTO) TableName() string {
	return "schedule_weekly_windows"
}

// DayOverrideDTO is a single-date exception. Nil minutes on a working
// override mean the whole day.
type DayOverrideDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	CourierID   uuid.UUID `gorm:"type:uuid;index"`
	Date        time.Time
	Working     bool
	StartMinute *int
	EndMinute   *int
}

// TableName specifies the database table name for day overrides.
func (DayOverrideDTO) TableName() string {
	return "schedule_day_overrides"
}

// RangeOverrideDTO is a date-range exception, inclusive on both ends.
type RangeOverrideDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	CourierID   uuid.UUID `gorm:"type:uuid;index"`
	FromDate    time.Time
	ToDate      time.Time
	Working     bool
	StartMinute *int
	EndMinute   *int
}

// TableName specifies the database table name for range overrides.
func (RangeOverrideDTO) TableName() string {
	return "schedule_range_overrides"
}

// fromDomain flattens a schedule aggregate into its three row sets.
func fromDomain(aggregate *schedule.Schedule) ([]WeeklyWindowDTO, []DayOverrideDTO, []RangeOverrideDTO) {
	courierID := aggregate.CourierID().Bytes()

	weekly := make([]WeeklyWindowDTO, 0, len(aggregate.Weekly()))
	for day, window := range aggregate.Weekly() {
		weekly = append(weekly, WeeklyWindowDTO{
			CourierID:   courierID,
			Weekday:     int(day),
			StartMinute: window.StartMinute(),
			EndMinute:   window.EndMinute(),
		})
	}

	days := make([]DayOverrideDTO, 0, len(aggregate.DayOverrides()))
	for _, override := range aggregate.DayOverrides() {
		start, end := windowMinutes(override.Window())
		days = append(days, DayOverrideDTO{
			CourierID:   courierID,
			Date:        override.Date(),
			Working:     override.Working(),
			StartMinute: start,
			EndMinute:   end,
		})
	}

	ranges := make([]RangeOverrideDTO, 0, len(aggregate.RangeOverrides()))
	for _, override := range aggregate.RangeOverrides() {
		start, end := windowMinutes(override.Window())
		ranges = append(ranges, RangeOverrideDTO{
			CourierID:   courierID,
			FromDate:    override.From(),
			ToDate:      override.To(),
			Working:     override.Working(),
			StartMinute: start,
			EndMinute:   end,
		})
	}

	return weekly, days, ranges
}

func windowMinutes(window *schedule.Window) (*int, *int) {
	if window == nil {
		return nil, nil
	}
	start := window.StartMinute()
	end := window.EndMinute()
	return &start, &end
}

// toDomain rebuilds the schedule aggregate from its row sets.
func toDomain(
	courierID kernel.UUID,
	weeklyRows []WeeklyWindowDTO,
	dayRows []DayOverrideDTO,
	rangeRows []RangeOverrideDTO,
) (*schedule.Schedule, error) {
	weekly := make(map[time.Weekday]schedule.Window, len(weeklyRows))
	for _, row := range weeklyRows {
		window, err := schedule.NewWindow(row.StartMinute, row.EndMinute)
		if err != nil {
			return nil, err
		}
		weekly[time.Weekday(row.Weekday)] = window
	}

	days := make([]schedule.DayOverride, 0, len(dayRows))
	for _, row := range dayRows {
		window, err := toWindow(row.StartMinute, row.EndMinute)
		if err != nil {
			return nil, err
		}
		override, err := schedule.NewDayOverride(row.Date, row.Working, window)
		if err != nil {
			return nil, err
		}
		days = append(days, override)
	}

	ranges := make([]schedule.RangeOverride, 0, len(rangeRows))
	for _, row := range rangeRows {
		window, err := toWindow(row.StartMinute, row.EndMinute)
		if err != nil {
			return nil, err
		}
		override, err := schedule.NewRangeOverride(row.FromDate, row.ToDate, row.Working, window)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, override)
	}

	return schedule.NewSchedule(courierID, weekly, days, ranges)
}

func toWindow(start, end *int) (*schedule.Window, error) {
	if start == nil || end == nil {
		return nil, nil
	}
	window, err := schedule.NewWindow(*start, *end)
	if err != nil {
		return nil, err
	}
	return &window, nil
}
