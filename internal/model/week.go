package model

import (
	"time"

	"github.com/Tiliavir/chrono/internal/timecalc"
)

// Week is a Monday to Sunday view over seven Days of one ISO week. Days
// supplied to WeekFromDays stay owned by their Month; only the blank days
// filling the remaining slots belong to the Week.
type Week struct {
	Year   int
	Number int

	days  [7]*Day
	owned [7]bool
}

// NewWeek creates a Week of blank Days.
func NewWeek(year, number int) (*Week, error) {
	monday, err := timecalc.ISOWeekStart(year, number)
	if err != nil {
		return nil, &Error{Kind: ErrBadDate, Msg: err.Error(), Err: err}
	}
	w := &Week{Year: year, Number: number}
	for i := range w.days {
		w.days[i] = NewDay(monday.AddDate(0, 0, i))
		w.owned[i] = true
	}
	return w, nil
}

// WeekFromDays builds the Week of the given days, which must share one ISO
// week and have distinct dates.
func WeekFromDays(days ...*Day) (*Week, error) {
	if len(days) == 0 {
		return nil, BadDate("A week can't be built from zero days.")
	}
	year, number := days[0].Date.ISOWeek()
	seen := map[string]bool{}
	for _, d := range days {
		y, n := d.Date.ISOWeek()
		if y != year || n != number {
			return nil, BadDate("All added days doesn't belong to the same week.")
		}
		iso := timecalc.FormatDate(d.Date)
		if seen[iso] {
			return nil, BadDate("The same date (%s) was added multiple times to week.", iso)
		}
		seen[iso] = true
	}

	w, err := NewWeek(year, number)
	if err != nil {
		return nil, err
	}
	for _, d := range days {
		i := timecalc.ISOWeekday(d.Date) - 1
		w.days[i] = d
		w.owned[i] = false
	}
	return w, nil
}

// Days returns Monday through Sunday.
func (w *Week) Days() []*Day {
	return w.days[:]
}

// Day returns the day of the given weekday.
func (w *Week) Day(wd time.Weekday) *Day {
	return w.days[(int(wd)+6)%7]
}

func (w *Week) Monday() *Day    { return w.days[0] }
func (w *Week) Tuesday() *Day   { return w.days[1] }
func (w *Week) Wednesday() *Day { return w.days[2] }
func (w *Week) Thursday() *Day  { return w.days[3] }
func (w *Week) Friday() *Day    { return w.days[4] }
func (w *Week) Saturday() *Day  { return w.days[5] }
func (w *Week) Sunday() *Day    { return w.days[6] }

// Owns reports whether d is one of the blank days created by the Week.
func (w *Week) Owns(d *Day) bool {
	for i, wd := range w.days {
		if wd == d {
			return w.owned[i]
		}
	}
	return false
}

// CalculateFlextime sums the flextime of all seven days.
func (w *Week) CalculateFlextime() time.Duration {
	var total time.Duration
	for _, d := range w.days {
		total += d.CalculateFlextime()
	}
	return total
}
