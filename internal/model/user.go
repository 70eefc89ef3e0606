package model

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/chrono/internal/timecalc"
)

// Profile holds the employment settings of a User.
type Profile struct {
	Name          string
	Employment    int
	PayedVacation int
	VacationMonth time.Month
	ExtraVacation int
	EmployedDate  *time.Time
}

// DefaultProfile returns the settings used for absent configuration keys.
func DefaultProfile() Profile {
	return Profile{Employment: 100, VacationMonth: time.January}
}

// User is the root of the active reporting period.
type User struct {
	Profile
	// Flextime is the balance carried in from before the first Year.
	Flextime time.Duration

	years    []*Year
	holidays map[string]string
	archive  *Archive
}

// NewUser creates a User. With an employment date the first Year starts on it.
func NewUser(p Profile) (*User, error) {
	if p.VacationMonth == 0 {
		p.VacationMonth = time.January
	}
	u := &User{Profile: p, holidays: map[string]string{}}
	if p.EmployedDate != nil {
		start := timecalc.Truncate(*p.EmployedDate)
		y, err := u.newYear(start.Year(), &start)
		if err != nil {
			return nil, err
		}
		u.years = append(u.years, y)
	}
	return u, nil
}

// Years returns the active years in chronological order.
func (u *User) Years() []*Year {
	return u.years
}

// CurrentYear returns the latest Year, or nil.
func (u *User) CurrentYear() *Year {
	if len(u.years) == 0 {
		return nil
	}
	return u.years[len(u.years)-1]
}

// CurrentMonth returns the latest Month, or nil.
func (u *User) CurrentMonth() *Month {
	if y := u.CurrentYear(); y != nil {
		return y.LastMonth()
	}
	return nil
}

// Today returns the most recently reported Day, or nil.
func (u *User) Today() *Day {
	if m := u.CurrentMonth(); m != nil {
		return m.LastAdded()
	}
	return nil
}

// Year returns the active Year n, or nil.
func (u *User) Year(n int) *Year {
	for _, y := range u.years {
		if y.Year == n {
			return y
		}
	}
	return nil
}

// Month returns the active Month ym, or nil.
func (u *User) Month(ym timecalc.YearMonth) *Month {
	if y := u.Year(ym.Year); y != nil {
		return y.Month(ym.Month)
	}
	return nil
}

// Day returns the reported Day for date, or nil.
func (u *User) Day(date time.Time) *Day {
	if m := u.Month(timecalc.MonthOf(date)); m != nil {
		return m.Day(date)
	}
	return nil
}

// NextWorkday returns the next date to be reported. Without any Year it is
// the zero time.
func (u *User) NextWorkday() time.Time {
	y := u.CurrentYear()
	if y == nil {
		return time.Time{}
	}
	next := y.NextWorkday()
	if next.Year() != y.NextYear() {
		return next
	}
	// The following year may start with registered holidays.
	ny, err := u.newYear(y.NextYear(), nil)
	if err != nil {
		return next
	}
	return ny.NextWorkday()
}

// NextMonth returns the month the next new Month will cover.
func (u *User) NextMonth() timecalc.YearMonth {
	if y := u.CurrentYear(); y != nil {
		return y.NextMonth()
	}
	return timecalc.YearMonth{}
}

// NextYear returns the year number following the current Year.
func (u *User) NextYear() int {
	if y := u.CurrentYear(); y != nil {
		return y.NextYear()
	}
	return 0
}

// AddDay adds a day, opening the Year of date once the current Year has no
// workdays left. A User without any Year starts one at the first added date.
func (u *User) AddDay(date time.Time) (*Day, error) {
	date = timecalc.Truncate(date)
	current := u.CurrentYear()
	if current == nil {
		y, err := u.newYear(date.Year(), &date)
		if err != nil {
			return nil, err
		}
		u.years = append(u.years, y)
		return y.AddDay(date)
	}
	if date.Year() <= current.Year {
		return current.AddDay(date)
	}
	if next := u.NextWorkday(); date.After(next) {
		return nil, consecutiveError(next, date)
	}
	if last := current.LastMonth(); last != nil && !last.Complete() {
		return nil, ReportError("New days can't be added while the report for a previous day is incomplete.")
	}
	y, err := u.newYear(date.Year(), nil)
	if err != nil {
		return nil, err
	}
	u.years = append(u.years, y)
	day, err := y.AddDay(date)
	if err != nil {
		u.years = u.years[:len(u.years)-1]
	}
	return day, err
}

func (u *User) newYear(n int, start *time.Time) (*Year, error) {
	var opts []YearOption
	if start != nil {
		opts = append(opts, WithStartDate(timecalc.FormatDate(*start)))
	}
	y, err := NewYear(strconv.Itoa(n), opts...)
	if err != nil {
		return nil, err
	}
	for iso, name := range u.holidays {
		d, _ := timecalc.ParseDate(iso)
		if d.Year() == n {
			_ = y.AddHoliday(d, name)
		}
	}
	return y, nil
}

// AddYear adds a holiday-only Year. A Year with the current number replaces
// the current Year; any other Year requires the current one to be complete.
func (u *User) AddYear(y *Year) error {
	if len(y.Months()) != 0 {
		return YearError("Added year can't contain any reported days.")
	}
	current := u.CurrentYear()
	if current != nil && y.Year != current.Year && !current.Complete() {
		return YearError("Previous year (%d) must be completed first.", current.Year)
	}
	if current != nil && y.Year == current.Year {
		if len(current.Months()) != 0 {
			return YearError("Year %d already has reported days and can't be replaced.", current.Year)
		}
		if y.startDate == nil {
			y.startDate = current.startDate
		}
		u.years[len(u.years)-1] = y
		return nil
	}
	if y.startDate == nil && u.EmployedDate != nil && u.EmployedDate.Year() == y.Year {
		d := *u.EmployedDate
		y.startDate = &d
	}
	u.years = append(u.years, y)
	return nil
}

// AddHoliday records a holiday centrally and in the matching Year.
func (u *User) AddHoliday(date time.Time, name string) error {
	date = timecalc.Truncate(date)
	u.holidays[timecalc.FormatDate(date)] = name
	if y := u.Year(date.Year()); y != nil {
		return y.AddHoliday(date, name)
	}
	return nil
}

// IsHoliday returns the holiday name registered for date.
func (u *User) IsHoliday(date time.Time) (string, bool) {
	name, ok := u.holidays[timecalc.FormatDate(date)]
	return name, ok
}

// AllDays returns every reported day in chronological order.
func (u *User) AllDays() []*Day {
	var days []*Day
	for _, y := range u.years {
		for _, m := range y.Months() {
			days = append(days, m.Days()...)
		}
	}
	return days
}

// CurrentWeek returns the Week holding the trailing run of reported days
// that belong to the most recent ISO week, or nil if nothing is reported.
func (u *User) CurrentWeek() (*Week, error) {
	days := u.AllDays()
	if len(days) == 0 {
		return nil, nil
	}
	latest := days[len(days)-1]
	year, week := latest.Date.ISOWeek()
	run := []*Day{latest}
	minWeekday := timecalc.ISOWeekday(latest.Date)
	for i := len(days) - 2; i >= 0; i-- {
		d := days[i]
		wd := timecalc.ISOWeekday(d.Date)
		y, w := d.Date.ISOWeek()
		if wd >= minWeekday || y != year || w != week {
			break
		}
		run = append(run, d)
		minWeekday = wd
	}
	wk, err := WeekFromDays(run...)
	if err != nil {
		return nil, err
	}
	for _, d := range wk.Days() {
		if wk.Owns(d) {
			if name, ok := u.IsHoliday(d.Date); ok {
				d.SetType(Holiday)
				d.Info = name
			}
		}
	}
	return wk, nil
}

// CarryArchive takes over the totals of archived months. Their flextime is
// added to the carried balance and their vacation days count as used. A
// User without reported days starts reporting after the archived months.
func (u *User) CarryArchive(a *Archive) error {
	next, ok := a.NextMonth()
	if !ok {
		return nil
	}
	if len(u.AllDays()) != 0 {
		return YearError("An archive can't be carried into a user with reported days.")
	}
	start := next.First()
	if u.EmployedDate != nil && u.EmployedDate.After(start) {
		start = timecalc.Truncate(*u.EmployedDate)
	}
	y, err := u.newYear(start.Year(), &start)
	if err != nil {
		return err
	}
	u.years = []*Year{y}
	u.Flextime += a.CalculateFlextime()
	u.archive = a
	return nil
}

// ArchivedVacation counts the vacation days taken in archived months,
// bounded to dates up to asOf when given.
func (u *User) ArchivedVacation(asOf *time.Time) int {
	if u.archive == nil {
		return 0
	}
	return u.archive.UsedVacation(asOf)
}

// CalculateFlextime returns the carried base plus every Year's flextime.
func (u *User) CalculateFlextime() time.Duration {
	total := u.Flextime
	for _, y := range u.years {
		total += y.CalculateFlextime()
	}
	return total
}

// UsedVacation counts vacation days, bounded by asOf when given.
func (u *User) UsedVacation(asOf *time.Time) int {
	n := 0
	for _, y := range u.years {
		n += y.UsedVacation(asOf)
	}
	return n
}

// SickDays counts sick days across all Years.
func (u *User) SickDays() int {
	n := 0
	for _, y := range u.years {
		n += y.SickDays()
	}
	return n
}

// VacationLeft returns the vacation days left as of asOf, defaulting to the
// latest reported day or the employment date. Entitlement vests once a year
// on the first of the vacation month; the first, partial cycle is prorated.
// The result may be negative and is truncated toward zero.
func (u *User) VacationLeft(asOf *time.Time) int {
	var at time.Time
	switch {
	case asOf != nil:
		at = timecalc.Truncate(*asOf)
	case u.Today() != nil:
		at = u.Today().Date
	case u.EmployedDate != nil:
		at = timecalc.Truncate(*u.EmployedDate)
	default:
		at = timecalc.Today()
	}

	// Entitled years in twelfths: the prorated first cycle plus whole cycles.
	twelfths := int64(0)
	if u.EmployedDate != nil {
		employed := *u.EmployedDate
		firstYear := employed.Year()
		if employed.Month() > u.VacationMonth {
			firstYear++
		}
		first := timecalc.Date(firstYear, u.VacationMonth, 1)
		if !at.Before(first) {
			twelfths += int64(((int(first.Month())-int(employed.Month()))%12 + 12) % 12)
		}
		whole := at.Year() - first.Year()
		if at.Month() < u.VacationMonth {
			whole--
		}
		if whole > 0 {
			twelfths += int64(12 * whole)
		}
	}

	twelve := decimal.NewFromInt(12)
	total := decimal.NewFromInt(int64(u.PayedVacation) * twelfths).Div(twelve).
		Add(decimal.NewFromInt(int64(u.ExtraVacation)))
	used := u.UsedVacation(&at) + u.ArchivedVacation(&at)
	left := total.Sub(decimal.NewFromInt(int64(used)))
	return int(left.IntPart())
}
