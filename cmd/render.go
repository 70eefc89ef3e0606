package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

const ruler = "--------------------------------------------------------"

func optionalClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return timecalc.FormatClock(*t)
}

// dayLine renders one day as a table row.
func dayLine(d *model.Day) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", d.Date.Weekday().String()[:3], timecalc.FormatDate(d.Date))
	switch {
	case d.Type.RequiresTimes():
		flex := ""
		if d.Complete() {
			flex = timecalc.FormatDuration(d.CalculateFlextime(), true)
		}
		fmt.Fprintf(&b, "  %5s %5s %5s %6s",
			optionalClock(d.StartTime),
			timecalc.FormatOptionalDuration(d.LunchDuration, false),
			optionalClock(d.EndTime),
			flex)
	default:
		fmt.Fprintf(&b, "  %-24s", strings.ReplaceAll(d.Type.String(), "_", " "))
	}
	if info := d.GetInfo(); info != "" {
		b.WriteString("  " + info)
	}
	return strings.TrimRight(b.String(), " ")
}

func printDays(w io.Writer, days []*model.Day) {
	if len(days) == 0 {
		fmt.Fprintln(w, "No days reported.")
		return
	}
	fmt.Fprintf(w, "%-14s  %5s %5s %5s %6s\n", "Date", "Start", "Lunch", "End", "Flex")
	fmt.Fprintln(w, ruler)
	for _, d := range days {
		fmt.Fprintln(w, dayLine(d))
	}
}

// printDay renders the detailed view of one day. For a day in progress the
// hours worked until now are shown.
func printDay(w io.Writer, d *model.Day, now time.Time) {
	fmt.Fprintf(w, "%s %s (%s)\n", d.Date.Weekday(), timecalc.FormatDate(d.Date), strings.ReplaceAll(d.Type.String(), "_", " "))
	if d.StartTime != nil {
		fmt.Fprintf(w, "  Start:     %s\n", timecalc.FormatClock(*d.StartTime))
	}
	if d.LunchDuration != nil {
		fmt.Fprintf(w, "  Lunch:     %s\n", timecalc.FormatDuration(*d.LunchDuration, false))
	}
	if d.EndTime != nil {
		fmt.Fprintf(w, "  End:       %s\n", timecalc.FormatClock(*d.EndTime))
	}
	if d.Deviation != 0 {
		fmt.Fprintf(w, "  Deviation: %s\n", timecalc.FormatDuration(d.Deviation, true))
	}
	if info := d.GetInfo(); info != "" {
		fmt.Fprintf(w, "  Info:      %s\n", info)
	}

	switch {
	case d.Type.RequiresTimes() && d.Complete():
		fmt.Fprintf(w, "  Worked:    %s\n", timecalc.FormatDuration(d.WorkedHours(), false))
		fmt.Fprintf(w, "  Flextime:  %s\n", timecalc.FormatDuration(d.CalculateFlextime(), true))
	case d.InProgress():
		at := time.Date(d.Date.Year(), d.Date.Month(), d.Date.Day(), now.Hour(), now.Minute(), 0, 0, time.UTC)
		if worked, err := d.WorkedHoursUntil(at); err == nil {
			fmt.Fprintf(w, "  Worked:    %s (until %s)\n", timecalc.FormatDuration(worked, false), timecalc.FormatClock(now))
			fmt.Fprintf(w, "  Flextime:  %s (if you stop now)\n", timecalc.FormatDuration(worked-d.ExpectedHours(), true))
		}
	}
}

func printTotals(w io.Writer, label string, flex time.Duration, vacation, sick int) {
	fmt.Fprintln(w, ruler)
	fmt.Fprintf(w, "%-14s  flextime %s, vacation days %d, sick days %d\n",
		label, timecalc.FormatDuration(flex, true), vacation, sick)
}
