package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/chofshli/pkg/dateutil"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	default:
		return fmt.Sprintf("DayType(%d)", int(t))
	}
}

// MarshalText encodes the day type by name
func (t DayType) MarshalText() ([]byte, error) {
	switch t {
	case DayTypeWorkday, DayTypeWeekend, DayTypeHoliday:
		return []byte(t.String()), nil
	}
	return nil, fmt.Errorf("unknown day type %d", int(t))
}

// UnmarshalText decodes a day type name
func (t *DayType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "workday":
		*t = DayTypeWorkday
	case "weekend":
		*t = DayTypeWeekend
	case "holiday":
		*t = DayTypeHoliday
	default:
		return fmt.Errorf("unknown day type %q", string(text))
	}
	return nil
}

// DayInfo is the classification of a single calendar day
type DayInfo struct {
	Date  time.Time       `json:"date"`
	Type  DayType         `json:"type"`
	Label string          `json:"label,omitempty"` // holiday display name
	Cost  decimal.Decimal `json:"cost"`            // leave cost of a holiday, zero otherwise
}

// HolidayRecord is a resolved day off and the leave it displaces
type HolidayRecord struct {
	Date        time.Time       `json:"date"`
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	Cost        decimal.Decimal `json:"cost"`
}

// Label returns the display name, falling back to the canonical name
func (r HolidayRecord) Label() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.Name
}

// Holidays maps calendar days to holiday records. The zero value is an
// empty calendar. A Holidays value is never modified after construction.
type Holidays struct {
	records map[string]HolidayRecord // key: "YYYY-MM-DD"
}

// NewHolidays builds a calendar from records. When two records share a date
// the higher cost wins; on equal cost the later record wins.
func NewHolidays(records ...HolidayRecord) Holidays {
	h := Holidays{records: make(map[string]HolidayRecord, len(records))}
	for _, r := range records {
		h.add(r)
	}
	return h
}

func (h Holidays) add(r HolidayRecord) {
	r.Date = dateutil.StartOfDay(r.Date)
	key := dateutil.FormatKey(r.Date)
	if existing, ok := h.records[key]; ok && existing.Cost.GreaterThan(r.Cost) {
		return
	}
	h.records[key] = r
}

// Lookup returns the holiday on the given day, if any
func (h Holidays) Lookup(date time.Time) (HolidayRecord, bool) {
	r, ok := h.records[dateutil.FormatKey(date)]
	return r, ok
}

// Len returns the number of holiday days
func (h Holidays) Len() int {
	return len(h.records)
}

// Records returns all records ordered by date
func (h Holidays) Records() []HolidayRecord {
	out := make([]HolidayRecord, 0, len(h.records))
	for _, r := range h.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Merge returns a new calendar holding the records of both calendars,
// resolving shared dates with the same rule as NewHolidays (other is later)
func (h Holidays) Merge(other Holidays) Holidays {
	merged := NewHolidays(h.Records()...)
	for _, r := range other.Records() {
		merged.add(r)
	}
	return merged
}

// Span is a maximal run of consecutive days of the same type
type Span struct {
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"`
	Type      DayType         `json:"type"`
	Label     string          `json:"label,omitempty"`  // label of the last day
	Labels    []string        `json:"labels,omitempty"` // distinct labels in order
	Days      int             `json:"days"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// Totals summarizes a classified range
type Totals struct {
	RequiredLeaveDays int             `json:"required_leave_days"`
	WeekendDays       int             `json:"weekend_days"`
	HolidayDays       int             `json:"holiday_days"`
	HolidayCostDays   decimal.Decimal `json:"holiday_cost_days"`
}

// LeaveDays returns the workdays plus the leave displaced by holidays
func (t Totals) LeaveDays() decimal.Decimal {
	return decimal.NewFromInt(int64(t.RequiredLeaveDays)).Add(t.HolidayCostDays)
}

// TotalDays returns the number of days the totals were computed from
func (t Totals) TotalDays() int {
	return t.RequiredLeaveDays + t.WeekendDays + t.HolidayDays
}
