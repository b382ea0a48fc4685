package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/username/chofshli/internal/calendar"
	"github.com/username/chofshli/internal/holiday"
	"github.com/username/chofshli/pkg/dateutil"
	"go.uber.org/zap"
)

// maxRangeDays bounds a single plan to keep requests cheap
const maxRangeDays = 3660

// HolidayResolver resolves holiday calendars for a date range
type HolidayResolver interface {
	ResolveRange(ctx context.Context, start, end time.Time, category holiday.Category) (calendar.Holidays, error)
	Resolve(ctx context.Context, year int, category holiday.Category) (calendar.Holidays, error)
}

// Result is a computed vacation plan
type Result struct {
	Start    time.Time          `json:"start"`
	End      time.Time          `json:"end"`
	Category holiday.Category   `json:"category"`
	Days     []calendar.DayInfo `json:"days"`
	Spans    []calendar.Span    `json:"spans"`
	Totals   calendar.Totals    `json:"totals"`
}

// Planner computes vacation plans
type Planner struct {
	resolver HolidayResolver
	logger   *zap.Logger
}

// NewPlanner creates a new planner
func NewPlanner(resolver HolidayResolver, logger *zap.Logger) *Planner {
	return &Planner{
		resolver: resolver,
		logger:   logger,
	}
}

// Plan classifies every day between start and end for a category and
// returns the receipt spans and totals. An inverted range is swapped.
func (p *Planner) Plan(ctx context.Context, start, end time.Time, category holiday.Category) (*Result, error) {
	start, end = dateutil.Normalize(start, end)
	category = holiday.ParseCategory(string(category))

	if n := dateutil.DaysBetween(start, end); n > maxRangeDays {
		return nil, fmt.Errorf("%w: %d days exceeds the limit of %d", calendar.ErrInvalidRange, n, maxRangeDays)
	}

	p.logger.Info("Starting vacation plan",
		zap.String("start", dateutil.FormatKey(start)),
		zap.String("end", dateutil.FormatKey(end)),
		zap.String("category", category.String()))

	holidays, err := p.resolver.ResolveRange(ctx, start, end, category)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve holidays: %w", err)
	}

	days, err := calendar.Classify(start, end, holidays)
	if err != nil {
		return nil, fmt.Errorf("failed to classify range: %w", err)
	}

	result := &Result{
		Start:    start,
		End:      end,
		Category: category,
		Days:     days,
		Spans:    calendar.Aggregate(days),
		Totals:   calendar.Summarize(days),
	}

	p.logger.Info("Vacation plan computed",
		zap.Int("days", len(days)),
		zap.Int("spans", len(result.Spans)),
		zap.Int("required_leave_days", result.Totals.RequiredLeaveDays),
		zap.Int("weekend_days", result.Totals.WeekendDays),
		zap.Int("holiday_days", result.Totals.HolidayDays),
		zap.String("holiday_cost_days", result.Totals.HolidayCostDays.String()))

	return result, nil
}

// Holidays returns the resolved holidays of a year for a category
func (p *Planner) Holidays(ctx context.Context, year int, category holiday.Category) ([]calendar.HolidayRecord, error) {
	holidays, err := p.resolver.Resolve(ctx, year, holiday.ParseCategory(string(category)))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve holidays: %w", err)
	}
	return holidays.Records(), nil
}
