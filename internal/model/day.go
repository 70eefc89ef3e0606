package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Tiliavir/chrono/internal/timecalc"
)

var whitespace = regexp.MustCompile(`\s+`)

// Day is the report of a single calendar date. Time fields are filled
// progressively and can be reported only once each.
type Day struct {
	Date          time.Time
	Type          DayType
	StartTime     *time.Time
	LunchDuration *time.Duration
	EndTime       *time.Time
	Deviation     time.Duration
	Comment       string
	Info          string
}

// NewDay creates a blank Day, classified as working day or weekend by its weekday.
func NewDay(date time.Time) *Day {
	date = timecalc.Truncate(date)
	return &Day{Date: date, Type: DefaultDayType(date)}
}

func (d *Day) isoDate() string {
	return timecalc.FormatDate(d.Date)
}

// ReportStartTime parses an H:MM clock time and records it as start time.
func (d *Day) ReportStartTime(text string) error {
	if d.StartTime != nil {
		return ReportError("Date %s already has a start time.", d.isoDate())
	}
	offset, err := timecalc.ParseClockTime(text)
	if err != nil {
		return &Error{Kind: ErrBadTime, Msg: fmt.Sprintf("Bad start time: %q.", text), Err: err}
	}
	return d.SetStartTime(offset)
}

// SetStartTime records the start time as an offset since midnight.
func (d *Day) SetStartTime(offset time.Duration) error {
	if d.StartTime != nil {
		return ReportError("Date %s already has a start time.", d.isoDate())
	}
	t := timecalc.At(d.Date, offset)
	d.StartTime = &t
	return nil
}

// ReportLunchDuration parses an H[:MM] duration and records it as lunch.
func (d *Day) ReportLunchDuration(text string) error {
	if err := d.checkLunch(); err != nil {
		return err
	}
	lunch, err := timecalc.ParseDuration(text)
	if err == nil && (lunch < 0 || strings.HasPrefix(text, "+")) {
		err = fmt.Errorf("%w: lunch can't be signed, was %q", timecalc.ErrBadDuration, text)
	}
	if err != nil {
		return &Error{Kind: ErrReport, Msg: fmt.Sprintf("Bad lunch duration for date %s: '%s'", d.isoDate(), text), Err: err}
	}
	return d.SetLunchDuration(lunch)
}

func (d *Day) checkLunch() error {
	if d.StartTime == nil {
		return ReportError("Date %s must have a start time before a lunch duration can be reported.", d.isoDate())
	}
	if d.LunchDuration != nil {
		return ReportError("Date %s already has a lunch duration.", d.isoDate())
	}
	return nil
}

// SetLunchDuration records the lunch duration.
func (d *Day) SetLunchDuration(lunch time.Duration) error {
	if err := d.checkLunch(); err != nil {
		return err
	}
	d.LunchDuration = &lunch
	return nil
}

// ReportEndTime parses an H:MM clock time and records it as end time.
func (d *Day) ReportEndTime(text string) error {
	if err := d.checkEnd(); err != nil {
		return err
	}
	offset, err := timecalc.ParseClockTime(text)
	if err != nil {
		return &Error{Kind: ErrBadTime, Msg: fmt.Sprintf("Bad end time: %q", text), Err: err}
	}
	return d.SetEndTime(offset)
}

func (d *Day) checkEnd() error {
	if d.StartTime == nil {
		return ReportError("Date %s must have a start time before an end time can be reported.", d.isoDate())
	}
	if d.LunchDuration == nil {
		return ReportError("Date %s must have a lunch duration before an end time can be reported.", d.isoDate())
	}
	if d.EndTime != nil {
		return ReportError("Date %s already has an end time.", d.isoDate())
	}
	return nil
}

// SetEndTime records the end time as an offset since midnight.
func (d *Day) SetEndTime(offset time.Duration) error {
	if err := d.checkEnd(); err != nil {
		return err
	}
	t := timecalc.At(d.Date, offset)
	d.EndTime = &t
	return nil
}

// ReportDeviation parses a signed duration. It may be reported any number
// of times; the last value wins.
func (d *Day) ReportDeviation(text string) error {
	deviation, err := timecalc.ParseDuration(text)
	if err != nil {
		return &Error{Kind: ErrReport, Msg: fmt.Sprintf("Bad deviation for date %s: '%s'", d.isoDate(), text), Err: err}
	}
	d.Deviation = deviation
	return nil
}

// Report reports start time, lunch duration and end time in order.
func (d *Day) Report(start, lunch, end string) error {
	if err := d.ReportStartTime(start); err != nil {
		return err
	}
	if err := d.ReportLunchDuration(lunch); err != nil {
		return err
	}
	return d.ReportEndTime(end)
}

// SetType reclassifies the day.
func (d *Day) SetType(t DayType) {
	d.Type = t
}

// Complete reports whether nothing is left to report for the day.
func (d *Day) Complete() bool {
	if !d.Type.RequiresTimes() {
		return true
	}
	return d.StartTime != nil && d.LunchDuration != nil && d.EndTime != nil
}

// InProgress reports whether the day has started but is not complete.
func (d *Day) InProgress() bool {
	return d.StartTime != nil && !d.Complete()
}

// ExpectedHours is the working time the day should contribute.
func (d *Day) ExpectedHours() time.Duration {
	return d.Type.ExpectedHours()
}

// WorkedHours returns end - start - lunch - deviation, or zero while any
// time field is missing.
func (d *Day) WorkedHours() time.Duration {
	if d.StartTime == nil || d.LunchDuration == nil || d.EndTime == nil {
		return 0
	}
	return d.EndTime.Sub(*d.StartTime) - *d.LunchDuration - d.Deviation
}

// ErrNotInProgress is returned by WorkedHoursUntil for days that have not
// started or are already complete.
var ErrNotInProgress = errors.New("custom end times can only be tried on days in progress")

// WorkedHoursUntil computes the hours worked so far if the day ended at end.
func (d *Day) WorkedHoursUntil(end time.Time) (time.Duration, error) {
	if d.StartTime == nil || d.Complete() {
		return 0, &Error{Kind: ErrReport, Msg: "Custom end times can only be tried on days in progress.", Err: ErrNotInProgress}
	}
	worked := end.Sub(*d.StartTime) - d.Deviation
	if d.LunchDuration != nil {
		worked -= *d.LunchDuration
	}
	return worked, nil
}

// CalculateFlextime returns worked minus expected hours for a complete
// working day. Other day types never contribute flextime.
func (d *Day) CalculateFlextime() time.Duration {
	if !d.Type.RequiresTimes() || !d.Complete() {
		return 0
	}
	return d.WorkedHours() - d.ExpectedHours()
}

// GetInfo joins info and comment into one sentence-terminated text.
func (d *Day) GetInfo() string {
	info := normalizeText(d.Info)
	comment := normalizeText(d.Comment)
	if comment != "" {
		comment = terminate(comment)
	}
	if info != "" && comment != "" {
		info = terminate(info)
	}
	return strings.TrimSpace(info + " " + comment)
}

func normalizeText(s string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}

func terminate(s string) string {
	if strings.ContainsAny(s[len(s)-1:], ".?!") {
		return s
	}
	return s + "."
}

// Export renders the day as one month-file line.
func (d *Day) Export() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%2d.", d.Date.Day())
	if g := d.Type.Glyph(); g != "" {
		b.WriteString(" " + g)
	}
	if d.StartTime != nil {
		b.WriteString(" " + timecalc.FormatClock(*d.StartTime))
	}
	if d.LunchDuration != nil {
		b.WriteString(" " + timecalc.FormatDuration(*d.LunchDuration, false))
	}
	if d.EndTime != nil {
		b.WriteString(" " + timecalc.FormatClock(*d.EndTime))
		if d.Deviation != 0 {
			b.WriteString(" " + timecalc.FormatDuration(d.Deviation, true))
		}
	}
	if c := normalizeText(d.Comment); c != "" {
		quote := `"`
		if strings.Contains(c, `"`) {
			quote = "'"
		}
		b.WriteString(" " + quote + c + quote)
	}
	return b.String()
}
