package model

import (
	"regexp"
	"strconv"
	"time"

	"github.com/Tiliavir/chrono/internal/timecalc"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// Year is the ordered sequence of months of one calendar year together with
// its holiday registry and carried-in flextime.
type Year struct {
	Year     int
	Flextime time.Duration

	months    []*Month
	startDate *time.Time
	holidays  map[time.Month]map[string]string
}

// YearOption configures a Year at construction.
type YearOption func(*Year) error

// WithFlextime sets the flextime balance carried into the year.
func WithFlextime(d time.Duration) YearOption {
	return func(y *Year) error {
		y.Flextime = d
		return nil
	}
}

// WithStartDate forces the first reportable date of the year, e.g. for a
// mid-year employment start.
func WithStartDate(s string) YearOption {
	return func(y *Year) error {
		d, err := timecalc.ParseDate(s)
		if err != nil {
			return &Error{Kind: ErrBadDate, Msg: `Argument start_date must be a ISO date string (e.g. "YYYY-MM-DD"), was "` + s + `".`, Err: err}
		}
		if d.Year() != y.Year {
			return BadDate(`Argument start_date must be a date in %d, was "%s".`, y.Year, s)
		}
		y.startDate = &d
		return nil
	}
}

// NewYear creates an empty Year from a "YYYY" string.
func NewYear(yearString string, opts ...YearOption) (*Year, error) {
	if !yearPattern.MatchString(yearString) {
		return nil, BadDate(`Argument year_string must be a year (e.g. "YYYY"), was "%s".`, yearString)
	}
	n, _ := strconv.Atoi(yearString)
	y := &Year{Year: n, holidays: map[time.Month]map[string]string{}}
	for m := time.January; m <= time.December; m++ {
		y.holidays[m] = map[string]string{}
	}
	for _, opt := range opts {
		if err := opt(y); err != nil {
			return nil, err
		}
	}
	return y, nil
}

// Months returns the months in chronological order.
func (y *Year) Months() []*Month {
	return y.months
}

// LastMonth returns the most recently added month, or nil.
func (y *Year) LastMonth() *Month {
	if len(y.months) == 0 {
		return nil
	}
	return y.months[len(y.months)-1]
}

// Month returns the month m if it has been added.
func (y *Year) Month(m time.Month) *Month {
	for _, month := range y.months {
		if month.Month == m {
			return month
		}
	}
	return nil
}

// StartDate returns the forced start date, if any.
func (y *Year) StartDate() *time.Time {
	return y.startDate
}

// firstMonth builds the month a fresh year starts with, honoring the forced
// start date and the registered holidays.
func (y *Year) firstMonth() *Month {
	var m *Month
	if y.startDate != nil {
		m = newMonthFrom(*y.startDate)
	} else {
		m = NewMonth(timecalc.YearMonth{Year: y.Year, Month: time.January})
	}
	y.seedHolidays(m)
	return m
}

func (y *Year) seedHolidays(m *Month) {
	for iso, name := range y.holidays[m.Month] {
		d, _ := timecalc.ParseDate(iso)
		m.AddHoliday(d, name)
	}
}

// NextWorkday returns the next date to be reported.
func (y *Year) NextWorkday() time.Time {
	last := y.LastMonth()
	if last == nil {
		return y.firstMonth().NextWorkday()
	}
	next := last.NextWorkday()
	if last.Contains(next) || next.Year() != y.Year {
		return next
	}
	// The following month may start with registered holidays.
	m := NewMonth(timecalc.MonthOf(next))
	y.seedHolidays(m)
	return m.NextWorkday()
}

// NextMonth returns the month the next new Month will cover.
func (y *Year) NextMonth() timecalc.YearMonth {
	if last := y.LastMonth(); last != nil {
		return last.NextMonth()
	}
	if y.startDate != nil {
		return timecalc.MonthOf(*y.startDate)
	}
	return timecalc.YearMonth{Year: y.Year, Month: time.January}
}

// NextYear returns the following year number.
func (y *Year) NextYear() int {
	return y.Year + 1
}

// AddDay adds a day, opening the Month of date when it is not the last one.
func (y *Year) AddDay(date time.Time) (*Day, error) {
	date = timecalc.Truncate(date)
	if date.Year() != y.Year {
		return nil, ReportError("New date string didn't match year. %d doesn't include %s.", y.Year, timecalc.FormatDate(date))
	}
	last := y.LastMonth()
	if last != nil && last.Contains(date) {
		return last.AddDay(date)
	}
	if last != nil && date.Before(last.First()) {
		after := last.First()
		if d := last.LastAdded(); d != nil {
			after = d.Date
		}
		return nil, orderError(date, after)
	}
	next := y.NextWorkday()
	if (last == nil && date.Before(y.firstMonth().start)) || date.After(next) {
		return nil, consecutiveError(next, date)
	}
	if last != nil && !last.Complete() {
		return nil, ReportError("New days can't be added while the report for a previous day is incomplete.")
	}
	m := y.openMonth(timecalc.MonthOf(date))
	day, err := m.AddDay(date)
	if err != nil {
		y.months = y.months[:len(y.months)-1]
	}
	return day, err
}

func (y *Year) openMonth(ym timecalc.YearMonth) *Month {
	var m *Month
	if y.startDate != nil && len(y.months) == 0 && timecalc.MonthOf(*y.startDate) == ym {
		m = newMonthFrom(*y.startDate)
	} else {
		m = NewMonth(ym)
	}
	y.seedHolidays(m)
	y.months = append(y.months, m)
	return m
}

// AddHoliday registers a holiday and propagates it to an existing Month.
func (y *Year) AddHoliday(date time.Time, name string) error {
	if date.Year() != y.Year {
		return BadDate("Holiday %s is not in year %d.", timecalc.FormatDate(date), y.Year)
	}
	y.holidays[date.Month()][timecalc.FormatDate(date)] = name
	if m := y.Month(date.Month()); m != nil {
		m.AddHoliday(date, name)
	}
	return nil
}

// Holidays returns the registered holidays of month m keyed by ISO date.
func (y *Year) Holidays(m time.Month) map[string]string {
	return y.holidays[m]
}

// Complete reports whether the next workday lies past this year and the
// last month is complete.
func (y *Year) Complete() bool {
	if y.NextWorkday().Year() == y.Year {
		return false
	}
	last := y.LastMonth()
	return last == nil || last.Complete()
}

// CalculateFlextime returns the carried-in balance plus all months.
func (y *Year) CalculateFlextime() time.Duration {
	total := y.Flextime
	for _, m := range y.months {
		total += m.CalculateFlextime()
	}
	return total
}

// SickDays counts sick days across all months.
func (y *Year) SickDays() int {
	n := 0
	for _, m := range y.months {
		n += m.SickDays()
	}
	return n
}

// UsedVacation counts vacation days across all months, bounded by asOf when given.
func (y *Year) UsedVacation(asOf *time.Time) int {
	n := 0
	for _, m := range y.months {
		n += m.UsedVacation(asOf)
	}
	return n
}
