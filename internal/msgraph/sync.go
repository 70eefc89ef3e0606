package msgraph

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Tiliavir/chrono/internal/storage"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

// SyncResult holds counters for a holiday import.
type SyncResult struct {
	Imported int
	Skipped  int
	Errors   int
}

// SyncOptions configures a holiday import.
type SyncOptions struct {
	// Base is the data folder holding the YYYY.conf files.
	Base string
	// Known holds the holidays already declared, keyed by ISO date. Imported
	// dates are added to it.
	Known    map[string]string
	Category string
	Timezone string
	DryRun   bool
	// Out receives one progress line per holiday.
	Out io.Writer
}

// Holiday is one imported holiday date.
type Holiday struct {
	Date time.Time
	Name string
}

// Line renders the holiday as a YYYY.conf line.
func (h Holiday) Line() string {
	name := h.Name
	quote := `"`
	if strings.Contains(name, `"`) {
		if strings.Contains(name, "'") {
			name = strings.ReplaceAll(name, `"`, "'")
		} else {
			quote = "'"
		}
	}
	return fmt.Sprintf("%s: %s%s%s", timecalc.FormatDate(h.Date), quote, name, quote)
}

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2026-02-27T00:00:00.0000000" without a zone
// suffix when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt, tz string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t, nil
	}
	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

func hasCategory(event CalendarEvent, category string) bool {
	for _, c := range event.Categories {
		if strings.EqualFold(strings.TrimSpace(c), category) {
			return true
		}
	}
	return false
}

// shouldSkip reports whether the event can't be a holiday.
func shouldSkip(event CalendarEvent, category string) bool {
	if event.IsCancelled || !event.IsAllDay {
		return true
	}
	if event.Start.DateTime == "" || event.End.DateTime == "" {
		return true
	}
	return category != "" && !hasCategory(event, category)
}

// MapEventToHolidays converts an all-day event into one Holiday per weekday
// it covers. The end of an all-day event is exclusive.
func MapEventToHolidays(event CalendarEvent, timezone string) ([]Holiday, error) {
	start, err := parseGraphTime(event.Start.DateTime, timezone)
	if err != nil {
		return nil, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseGraphTime(event.End.DateTime, timezone)
	if err != nil {
		return nil, fmt.Errorf("parsing end time: %w", err)
	}
	name := strings.Join(strings.Fields(event.Subject), " ")
	if name == "" {
		name = "Holiday"
	}

	first := timecalc.Date(start.Year(), start.Month(), start.Day())
	last := timecalc.Date(end.Year(), end.Month(), end.Day())
	if !last.After(first) {
		last = first.AddDate(0, 0, 1)
	}
	var holidays []Holiday
	for d := first; d.Before(last); d = d.AddDate(0, 0, 1) {
		if timecalc.IsWeekend(d) {
			continue
		}
		holidays = append(holidays, Holiday{Date: d, Name: name})
	}
	return holidays, nil
}

// SyncHolidays appends the holidays found in events to the year files,
// skipping dates that are already declared.
func SyncHolidays(events []CalendarEvent, opts SyncOptions) (SyncResult, error) {
	var result SyncResult
	if opts.Known == nil {
		opts.Known = map[string]string{}
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	for _, event := range events {
		if shouldSkip(event, opts.Category) {
			continue
		}
		holidays, err := MapEventToHolidays(event, opts.Timezone)
		if err != nil {
			logrus.WithError(err).WithField("event", event.ID).Warn("could not map calendar event")
			fmt.Fprintf(out, "  ! Error mapping event %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}

		for _, h := range holidays {
			iso := timecalc.FormatDate(h.Date)
			if name, ok := opts.Known[iso]; ok {
				fmt.Fprintf(out, "  - Skipped:  %s %s (already declared as %q)\n", iso, h.Name, name)
				result.Skipped++
				continue
			}
			if !opts.DryRun {
				path := storage.YearFilePath(opts.Base, h.Date.Year())
				if err := storage.AppendLine(path, h.Line()); err != nil {
					fmt.Fprintf(out, "  ! Error saving %s: %v\n", iso, err)
					result.Errors++
					continue
				}
			}
			opts.Known[iso] = h.Name
			fmt.Fprintf(out, "  + Imported: %s\n", h.Line())
			result.Imported++
		}
	}
	return result, nil
}
