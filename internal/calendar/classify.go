package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/chofshli/pkg/dateutil"
)

// ErrInvalidRange is returned when a range starts after it ends
var ErrInvalidRange = errors.New("invalid date range")

// Classify returns the classification of every day from start to end
// inclusive, in ascending order. Holidays take precedence over weekends.
func Classify(start, end time.Time, holidays Holidays) ([]DayInfo, error) {
	start, end = dateutil.StartOfDay(start), dateutil.StartOfDay(end)
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s is after %s", ErrInvalidRange,
			dateutil.FormatKey(start), dateutil.FormatKey(end))
	}

	days := dateutil.EachDay(start, end)
	out := make([]DayInfo, 0, len(days))
	for _, d := range days {
		out = append(out, ClassifyDay(d, holidays))
	}
	return out, nil
}

// ClassifyDay classifies a single day
func ClassifyDay(date time.Time, holidays Holidays) DayInfo {
	date = dateutil.StartOfDay(date)

	if r, ok := holidays.Lookup(date); ok {
		return DayInfo{
			Date:  date,
			Type:  DayTypeHoliday,
			Label: r.Label(),
			Cost:  r.Cost,
		}
	}

	dayType := DayTypeWorkday
	if dateutil.IsWeekend(date) {
		dayType = DayTypeWeekend
	}
	return DayInfo{Date: date, Type: dayType, Cost: decimal.Zero}
}
