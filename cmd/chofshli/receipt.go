package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/username/chofshli/internal/calendar"
	"github.com/username/chofshli/internal/holiday"
	"github.com/username/chofshli/internal/planner"
	"github.com/username/chofshli/pkg/dateutil"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	holidayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	weekendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	workdayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	totalStyle   = lipgloss.NewStyle().Bold(true)
)

const divider = "═══════════════════════════════════════════════════════"

func spanStyle(t calendar.DayType) lipgloss.Style {
	switch t {
	case calendar.DayTypeHoliday:
		return holidayStyle
	case calendar.DayTypeWeekend:
		return weekendStyle
	default:
		return workdayStyle
	}
}

// spanDates renders "Sun 13/04/2025" or "Sun 13/04/2025 - Thu 17/04/2025"
func spanDates(s calendar.Span) string {
	if dateutil.IsSameDay(s.Start, s.End) {
		return s.Start.Format(dateutil.DisplayLayout)
	}
	return s.Start.Format(dateutil.DisplayLayout) + " - " + s.End.Format(dateutil.DisplayLayout)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func spanLine(s calendar.Span) string {
	line := fmt.Sprintf("%-31s %-8s %-7s", spanDates(s), pluralDays(s.Days), s.Type)
	if s.Type == calendar.DayTypeHoliday {
		line += fmt.Sprintf(" %s (cost %s)", strings.Join(s.Labels, ", "), s.TotalCost)
	}
	return spanStyle(s.Type).Render(line)
}

func printReceipt(w io.Writer, result *planner.Result) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Vacation %s - %s (%s)",
		result.Start.Format(dateutil.DisplayLayout),
		result.End.Format(dateutil.DisplayLayout),
		result.Category)))
	fmt.Fprintln(w, divider)

	for _, s := range result.Spans {
		fmt.Fprintf(w, "  %s\n", spanLine(s))
	}

	t := result.Totals
	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "  Days in range:       %d\n", t.TotalDays())
	fmt.Fprintf(w, "  Weekend days:        %d\n", t.WeekendDays)
	fmt.Fprintf(w, "  Holiday days:        %d %s\n", t.HolidayDays,
		subtleStyle.Render(fmt.Sprintf("(holiday cost %s)", t.HolidayCostDays)))
	fmt.Fprintln(w, totalStyle.Render(fmt.Sprintf("  Required leave days: %d", t.RequiredLeaveDays)))
	if t.HolidayCostDays.IsPositive() {
		fmt.Fprintf(w, "  Leave incl. holiday cost: %s\n", t.LeaveDays())
	}
}

func printHolidays(w io.Writer, year int, category holiday.Category, records []calendar.HolidayRecord) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Holidays %d (%s)", year, category)))
	fmt.Fprintln(w, divider)

	if len(records) == 0 {
		fmt.Fprintln(w, subtleStyle.Render("  No holidays found"))
		return
	}

	for _, r := range records {
		name := r.Name
		if r.DisplayName != "" && r.DisplayName != r.Name {
			name = fmt.Sprintf("%s %s", r.Name, subtleStyle.Render("("+r.DisplayName+")"))
		}
		fmt.Fprintf(w, "  %s  %-4s %s\n", r.Date.Format(dateutil.DisplayLayout), r.Cost, holidayStyle.Render(name))
	}
}
