package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

func reportedDay(t *testing.T, date time.Time, start, lunch, end string) *model.Day {
	t.Helper()
	d := model.NewDay(date)
	if start != "" {
		if err := d.ReportStartTime(start); err != nil {
			t.Fatal(err)
		}
	}
	if lunch != "" {
		if err := d.ReportLunchDuration(lunch); err != nil {
			t.Fatal(err)
		}
	}
	if end != "" {
		if err := d.ReportEndTime(end); err != nil {
			t.Fatal(err)
		}
	}
	return d
}

func TestDayLine(t *testing.T) {
	complete := reportedDay(t, timecalc.Date(2014, 9, 1), "8:00", "1:00", "17:01")
	complete.Comment = "First day"
	started := reportedDay(t, timecalc.Date(2014, 9, 3), "9:15", "", "")
	sick := model.NewDay(timecalc.Date(2014, 9, 2))
	sick.SetType(model.SickDay)
	holiday := model.NewDay(timecalc.Date(2014, 12, 25))
	holiday.SetType(model.Holiday)
	holiday.Info = "Christmas Day"

	tests := []struct {
		day  *model.Day
		want string
	}{
		{complete, "Mon 2014-09-01   8:00  1:00 17:01  +0:01  First day."},
		{started, "Wed 2014-09-03   9:15"},
		{sick, "Tue 2014-09-02  sick day"},
		{holiday, "Thu 2014-12-25  holiday                   Christmas Day"},
	}
	for _, tt := range tests {
		if got := dayLine(tt.day); got != tt.want {
			t.Errorf("dayLine = %q, want %q", got, tt.want)
		}
	}
}

func TestPrintDayInProgress(t *testing.T) {
	d := reportedDay(t, timecalc.Date(2014, 9, 3), "8:00", "0:30", "")
	var buf bytes.Buffer
	printDay(&buf, d, time.Date(2014, 9, 3, 12, 30, 0, 0, time.Local))
	out := buf.String()
	for _, want := range []string{
		"Wednesday 2014-09-03 (working day)",
		"Worked:    4:00 (until 12:30)",
		"Flextime:  -4:00 (if you stop now)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintDayComplete(t *testing.T) {
	d := reportedDay(t, timecalc.Date(2014, 9, 1), "8:00", "1:00", "16:30")
	if err := d.ReportDeviation("-0:15"); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	printDay(&buf, d, time.Now())
	out := buf.String()
	for _, want := range []string{"Deviation: -0:15", "Worked:    7:45", "Flextime:  -0:15"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintWeekShowsReportedDaysOnly(t *testing.T) {
	mon := reportedDay(t, timecalc.Date(2014, 9, 1), "8:00", "1:00", "17:30")
	tue := reportedDay(t, timecalc.Date(2014, 9, 2), "8:00", "1:00", "16:30")
	week, err := model.WeekFromDays(mon, tue)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	printWeek(&buf, week)
	out := buf.String()
	if !strings.HasPrefix(out, "Week 2014-W36\n") {
		t.Errorf("header:\n%s", out)
	}
	if strings.Contains(out, "Wed 2014-09-03") {
		t.Errorf("blank days should not be listed:\n%s", out)
	}
	if !strings.Contains(out, "flextime +0:00") {
		t.Errorf("week total missing:\n%s", out)
	}

	buf.Reset()
	printWeek(&buf, nil)
	if buf.String() != "No days reported.\n" {
		t.Errorf("empty week = %q", buf.String())
	}
}

func TestHolidayRange(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.Local)
	tests := []struct {
		year     int
		from, to string
		want     [2]string
		wantErr  bool
	}{
		{0, "", "", [2]string{"2026-01-01", "2027-01-01"}, false},
		{2027, "", "", [2]string{"2027-01-01", "2028-01-01"}, false},
		{0, "2026-12-01", "2026-12-31", [2]string{"2026-12-01", "2027-01-01"}, false},
		{0, "2026-12-01", "", [2]string{"2026-12-01", "2027-12-01"}, false},
		{0, "", "2026-12-31", [2]string{}, true},
		{0, "2026-12-01", "2026-11-01", [2]string{}, true},
		{0, "December", "", [2]string{}, true},
	}
	for _, tt := range tests {
		from, to, err := holidayRange(tt.year, tt.from, tt.to, now)
		if tt.wantErr {
			if err == nil {
				t.Errorf("holidayRange(%d, %q, %q) expected an error", tt.year, tt.from, tt.to)
			}
			continue
		}
		if err != nil {
			t.Errorf("holidayRange(%d, %q, %q): %v", tt.year, tt.from, tt.to, err)
			continue
		}
		got := [2]string{timecalc.FormatDate(from), timecalc.FormatDate(to)}
		if got != tt.want {
			t.Errorf("holidayRange(%d, %q, %q) = %v, want %v", tt.year, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestEditorCommand(t *testing.T) {
	c, err := editorCommand("code --wait", "/data/2014-09.txt")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(c.Args, " "); got != "code --wait /data/2014-09.txt" {
		t.Errorf("args = %q", got)
	}
	if _, err := editorCommand("  ", "x"); err == nil {
		t.Error("expected an error for an empty editor")
	}
}
