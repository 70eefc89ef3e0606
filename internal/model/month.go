package model

import (
	"time"

	"github.com/Tiliavir/chrono/internal/timecalc"
)

// Month is the chronologically ordered sequence of reported days of one
// calendar month.
type Month struct {
	timecalc.YearMonth

	days     []*Day
	holidays map[string]string
	// start is the first reportable date while the month is empty.
	start time.Time
}

// NewMonth creates an empty Month.
func NewMonth(ym timecalc.YearMonth) *Month {
	return &Month{YearMonth: ym, holidays: map[string]string{}, start: ym.First()}
}

// ParseMonth creates an empty Month from a "YYYY-MM" string.
func ParseMonth(s string) (*Month, error) {
	ym, err := timecalc.ParseYearMonth(s)
	if err != nil {
		return nil, &Error{Kind: ErrBadDate, Msg: "Bad date string: \"" + s + "\"", Err: err}
	}
	return NewMonth(ym), nil
}

// newMonthFrom creates an empty Month whose first reportable date is start.
func newMonthFrom(start time.Time) *Month {
	m := NewMonth(timecalc.MonthOf(start))
	m.start = timecalc.Truncate(start)
	return m
}

// Days returns the reported days in chronological order.
func (m *Month) Days() []*Day {
	return m.days
}

// LastAdded returns the most recently added day, or nil for an empty month.
func (m *Month) LastAdded() *Day {
	if len(m.days) == 0 {
		return nil
	}
	return m.days[len(m.days)-1]
}

// Day returns the reported day for date, or nil.
func (m *Month) Day(date time.Time) *Day {
	for _, d := range m.days {
		if timecalc.SameDay(d.Date, date) {
			return d
		}
	}
	return nil
}

// AddDay appends a Day for date. The date must follow the last added day
// and must not lie after the next workday, so weekends and holidays in
// between can be reported as well. The previous day has to be complete.
func (m *Month) AddDay(date time.Time) (*Day, error) {
	date = timecalc.Truncate(date)
	iso := timecalc.FormatDate(date)
	if !m.Contains(date) {
		return nil, ReportError("New date string didn't match month. %s doesn't include %s.", m.YearMonth, iso)
	}
	if m.Day(date) != nil {
		return nil, ReportError("Date %s already added to month.", iso)
	}
	last := m.LastAdded()
	if last != nil && !date.After(last.Date) {
		return nil, orderError(date, last.Date)
	}
	if last != nil && !last.Complete() {
		return nil, ReportError("New days can't be added while the report for a previous day is incomplete.")
	}
	if next := m.NextWorkday(); date.Before(m.start) || date.After(next) {
		return nil, consecutiveError(next, date)
	}

	day := NewDay(date)
	if name, ok := m.holidays[iso]; ok {
		day.SetType(Holiday)
		day.Info = name
	}
	m.days = append(m.days, day)
	return day, nil
}

// NextWorkday returns the first working day after the last added day,
// skipping weekends and registered holidays. The result may lie in a
// following month.
func (m *Month) NextWorkday() time.Time {
	next := m.start
	if last := m.LastAdded(); last != nil {
		next = last.Date.AddDate(0, 0, 1)
	}
	for DefaultDayType(next) != WorkingDay || m.isHoliday(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func consecutiveError(next, date time.Time) error {
	return ReportError("New work days must be added consecutively. Expected %s, got %s.",
		timecalc.FormatDate(next), timecalc.FormatDate(date))
}

func orderError(date, after time.Time) error {
	return ReportError("New days must be added in chronological order. %s is not after %s.",
		timecalc.FormatDate(date), timecalc.FormatDate(after))
}

func (m *Month) isHoliday(date time.Time) bool {
	_, ok := m.holidays[timecalc.FormatDate(date)]
	return ok
}

// NextMonth returns the following calendar month.
func (m *Month) NextMonth() timecalc.YearMonth {
	return m.YearMonth.Next()
}

// Complete reports whether every workday of the month has been reported.
func (m *Month) Complete() bool {
	if m.Contains(m.NextWorkday()) {
		return false
	}
	last := m.LastAdded()
	return last == nil || last.Complete()
}

// AddHoliday registers a holiday and reclassifies an already reported day.
func (m *Month) AddHoliday(date time.Time, name string) {
	m.holidays[timecalc.FormatDate(date)] = name
	if d := m.Day(date); d != nil {
		d.SetType(Holiday)
		d.Info = name
	}
}

// Holidays returns the registered holiday names keyed by ISO date.
func (m *Month) Holidays() map[string]string {
	return m.holidays
}

// CalculateFlextime sums the flextime of all days.
func (m *Month) CalculateFlextime() time.Duration {
	var total time.Duration
	for _, d := range m.days {
		total += d.CalculateFlextime()
	}
	return total
}

// UsedVacation counts vacation days, bounded to dates up to asOf when given.
func (m *Month) UsedVacation(asOf *time.Time) int {
	n := 0
	for _, d := range m.days {
		if !d.Type.CountsAsVacation() {
			continue
		}
		if asOf != nil && d.Date.After(timecalc.Truncate(*asOf)) {
			continue
		}
		n++
	}
	return n
}

// SickDays counts sick days.
func (m *Month) SickDays() int {
	n := 0
	for _, d := range m.days {
		if d.Type.CountsAsSickDay() {
			n++
		}
	}
	return n
}
