package model

import (
	"fmt"
	"time"
)

// StandardHours is the expected working time of a full working day.
const StandardHours = 8 * time.Hour

// DayType classifies a Day.
type DayType int

const (
	WorkingDay DayType = iota
	Weekend
	Holiday
	Vacation
	SickDay
)

var dayTypeNames = map[DayType]string{
	WorkingDay: "working_day",
	Weekend:    "weekend",
	Holiday:    "holiday",
	Vacation:   "vacation",
	SickDay:    "sick_day",
}

func (t DayType) String() string {
	if s, ok := dayTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("DayType(%d)", int(t))
}

// Glyph is the classification token written in month files, empty for
// types that are not written explicitly.
func (t DayType) Glyph() string {
	switch t {
	case Vacation:
		return "V"
	case SickDay:
		return "S"
	}
	return ""
}

// ParseDayType maps a month-file classification token (S/s, V/v).
func ParseDayType(token string) (DayType, bool) {
	switch token {
	case "S", "s":
		return SickDay, true
	case "V", "v":
		return Vacation, true
	}
	return WorkingDay, false
}

// ExpectedHours is the working time the day type is expected to contribute.
func (t DayType) ExpectedHours() time.Duration {
	if t == WorkingDay {
		return StandardHours
	}
	return 0
}

// CountsAsVacation reports whether the day consumes a vacation day.
func (t DayType) CountsAsVacation() bool { return t == Vacation }

// CountsAsSickDay reports whether the day is a sick day.
func (t DayType) CountsAsSickDay() bool { return t == SickDay }

// RequiresTimes reports whether the day is incomplete until times are reported.
func (t DayType) RequiresTimes() bool { return t == WorkingDay }

// DefaultDayType classifies a date by weekday alone.
func DefaultDayType(date time.Time) DayType {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return Weekend
	}
	return WorkingDay
}
