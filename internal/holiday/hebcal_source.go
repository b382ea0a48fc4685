package holiday

import (
	"context"
	"fmt"

	"github.com/hebcal/hebcal-go/event"
	"github.com/hebcal/hebcal-go/hebcal"
	"github.com/username/chofshli/pkg/dateutil"
	"go.uber.org/zap"
)

const defaultLocale = "he"

// HebcalSource computes observances with hebcal using the Israeli holiday
// schedule
type HebcalSource struct {
	locale string
	logger *zap.Logger
}

// NewHebcalSource creates a new HebcalSource rendering display names in
// locale ("he" if empty)
func NewHebcalSource(locale string, logger *zap.Logger) *HebcalSource {
	if locale == "" {
		locale = defaultLocale
	}
	return &HebcalSource{
		locale: locale,
		logger: logger,
	}
}

// Observances returns the observances of a Gregorian year
func (s *HebcalSource) Observances(ctx context.Context, year int) ([]Observance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := hebcal.CalOptions{
		Year:           year,
		IsHebrewYear:   false,
		CandleLighting: false,
		Sedrot:         false,
		IL:             true,
	}

	events, err := hebcal.HebrewCalendar(&opts)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hebcal calendar for %d: %w", year, err)
	}

	observances := make([]Observance, 0, len(events))
	for _, ev := range events {
		kinds := kindsFromFlags(ev.GetFlags())
		if kinds == 0 {
			continue
		}

		observances = append(observances, Observance{
			Date:      dateutil.StartOfDay(ev.GetDate().Gregorian()),
			Name:      ev.Render("en"),
			LocalName: ev.Render(s.locale),
			Kinds:     kinds,
		})
	}

	s.logger.Debug("Hebcal observances computed",
		zap.Int("year", year),
		zap.Int("events", len(events)),
		zap.Int("observances", len(observances)))

	return observances, nil
}

// kindsFromFlags maps hebcal flag bits onto observance kinds
func kindsFromFlags(flags event.HolidayFlags) Kinds {
	var kinds Kinds
	if flags&event.CHAG != 0 {
		kinds |= Kinds(KindYomTov)
	}
	if flags&event.MODERN_HOLIDAY != 0 {
		kinds |= Kinds(KindModern)
	}
	if flags&event.EREV != 0 {
		kinds |= Kinds(KindErev)
	}
	if flags&event.CHOL_HAMOED != 0 {
		kinds |= Kinds(KindCholHamoed)
	}
	if flags&event.MINOR_HOLIDAY != 0 {
		kinds |= Kinds(KindMinor)
	}
	return kinds
}
