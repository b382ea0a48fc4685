package calendar

import "github.com/shopspring/decimal"

// Aggregate collapses consecutive days of the same type into spans.
// Holiday spans are not split on a change of holiday name: the label of the
// last day is kept as Label, every distinct label is kept in Labels and the
// cost of all member days is summed.
func Aggregate(days []DayInfo) []Span {
	var spans []Span
	var open *Span

	for _, day := range days {
		if open != nil && open.Type == day.Type {
			open.End = day.Date
			open.Days++
			open.TotalCost = open.TotalCost.Add(day.Cost)
			if day.Label != "" {
				open.Label = day.Label
				if n := len(open.Labels); n == 0 || open.Labels[n-1] != day.Label {
					open.Labels = append(open.Labels, day.Label)
				}
			}
			continue
		}

		// Type changed: close the open span
		if open != nil {
			spans = append(spans, *open)
		}
		open = &Span{
			Start:     day.Date,
			End:       day.Date,
			Type:      day.Type,
			Label:     day.Label,
			Days:      1,
			TotalCost: day.Cost,
		}
		if day.Label != "" {
			open.Labels = []string{day.Label}
		}
	}

	if open != nil {
		spans = append(spans, *open)
	}
	return spans
}

// Summarize reduces classified days into totals
func Summarize(days []DayInfo) Totals {
	totals := Totals{HolidayCostDays: decimal.Zero}
	for _, day := range days {
		switch day.Type {
		case DayTypeWorkday:
			totals.RequiredLeaveDays++
		case DayTypeWeekend:
			totals.WeekendDays++
		case DayTypeHoliday:
			totals.HolidayDays++
			totals.HolidayCostDays = totals.HolidayCostDays.Add(day.Cost)
		}
	}
	return totals
}
