package timecalc

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the ISO date layout used in every data file.
const DateLayout = "2006-01-02"

var (
	// ErrBadClock is returned for text that is not a valid H:MM clock time.
	ErrBadClock = errors.New("bad clock time")
	// ErrBadDuration is returned for text that is not a valid H[:MM] duration.
	ErrBadDuration = errors.New("bad duration")
	// ErrBadDate is returned for text that is not a YYYY-MM-DD date.
	ErrBadDate = errors.New("bad date")
)

var (
	clockPattern    = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})$`)
	durationPattern = regexp.MustCompile(`^([+-])?(\d{1,2})(?:[:.](\d{2}))?$`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Date returns midnight UTC of the given calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the clock part of t and returns the calendar date as midnight UTC.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns the local calendar date as midnight UTC.
func Today() time.Time {
	return Truncate(time.Now())
}

// ParseDate parses a strict YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClockTime parses "H:MM", "HH:MM" or "H.MM" into the offset since midnight.
func ParseClockTime(text string) (time.Duration, error) {
	m := clockPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, text)
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	if h > 23 || mins > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, text)
	}
	return time.Duration(h)*time.Hour + time.Duration(mins)*time.Minute, nil
}

// At returns the instant offset after midnight of date.
func At(date time.Time, offset time.Duration) time.Time {
	return Truncate(date).Add(offset)
}

// ParseDuration parses "H", "H:MM" or "H.MM" with an optional leading sign.
func ParseDuration(text string) (time.Duration, error) {
	m := durationPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrBadDuration, text)
	}
	h, _ := strconv.Atoi(m[2])
	mins := 0
	if m[3] != "" {
		mins, _ = strconv.Atoi(m[3])
	}
	if mins > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadDuration, text)
	}
	d := time.Duration(h)*time.Hour + time.Duration(mins)*time.Minute
	if m[1] == "-" {
		d = -d
	}
	return d, nil
}

// FormatDuration renders d as "H:MM" ("-H:MM" when negative). With signed
// set, non-negative values get a leading "+", zero included.
func FormatDuration(d time.Duration, signed bool) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	} else if signed {
		sign = "+"
	}
	h := int64(d / time.Hour)
	m := int64((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%s%d:%02d", sign, h, m)
}

// FormatOptionalDuration is FormatDuration for an optional value; nil renders as "".
func FormatOptionalDuration(d *time.Duration, signed bool) string {
	if d == nil {
		return ""
	}
	return FormatDuration(*d, signed)
}

// FormatClock renders the clock part of t as "H:MM".
func FormatClock(t time.Time) string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	monday := Truncate(t).AddDate(0, 0, -(ISOWeekday(t) - 1))
	return monday, monday.AddDate(0, 0, 6)
}

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd
}

// ISOWeekStart returns the Monday of the given ISO week.
func ISOWeekStart(year, week int) (time.Time, error) {
	if week < 1 || week > ISOWeeksInYear(year) {
		return time.Time{}, fmt.Errorf("%w: week %d is not a week of %d", ErrBadDate, week, year)
	}
	jan4 := Date(year, time.January, 4)
	monday := jan4.AddDate(0, 0, -(ISOWeekday(jan4) - 1))
	return monday.AddDate(0, 0, 7*(week-1)), nil
}

// ISOWeeksInYear returns 52 or 53.
func ISOWeeksInYear(year int) int {
	_, w := Date(year, time.December, 28).ISOWeek()
	return w
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
