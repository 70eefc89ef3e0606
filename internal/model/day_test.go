package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

func date(y int, m time.Month, d int) time.Time {
	return timecalc.Date(y, m, d)
}

func TestNewDayClassification(t *testing.T) {
	tests := []struct {
		date time.Time
		want model.DayType
	}{
		{date(2014, 9, 1), model.WorkingDay},
		{date(2014, 9, 5), model.WorkingDay},
		{date(2014, 9, 6), model.Weekend},
		{date(2014, 9, 7), model.Weekend},
	}
	for _, tt := range tests {
		d := model.NewDay(tt.date)
		assert.Equal(t, tt.want, d.Type, timecalc.FormatDate(tt.date))
	}
}

func TestExpectedHours(t *testing.T) {
	d := model.NewDay(date(2014, 9, 1))
	assert.Equal(t, 8*time.Hour, d.ExpectedHours())

	for _, typ := range []model.DayType{model.Weekend, model.Holiday, model.Vacation, model.SickDay} {
		d.SetType(typ)
		assert.Zero(t, d.ExpectedHours(), typ.String())
	}
}

func TestReportStartTime(t *testing.T) {
	d := model.NewDay(date(2014, 9, 1))
	require.NoError(t, d.ReportStartTime("8:00"))
	require.NotNil(t, d.StartTime)
	assert.Equal(t, time.Date(2014, 9, 1, 8, 0, 0, 0, time.UTC), *d.StartTime)

	err := d.ReportStartTime("9:00")
	require.ErrorIs(t, err, model.ErrReport)
	assert.EqualError(t, err, "Date 2014-09-01 already has a start time.")

	for _, bad := range []string{"8", "8:10:14", "24:00", "eight"} {
		err := model.NewDay(date(2014, 9, 1)).ReportStartTime(bad)
		assert.ErrorIs(t, err, model.ErrBadTime, bad)
	}
}

func TestReportLunchDuration(t *testing.T) {
	d := model.NewDay(date(2014, 9, 1))
	err := d.ReportLunchDuration("1:00")
	require.ErrorIs(t, err, model.ErrReport)
	assert.EqualError(t, err, "Date 2014-09-01 must have a start time before a lunch duration can be reported.")

	require.NoError(t, d.ReportStartTime("8:00"))
	require.NoError(t, d.ReportLunchDuration("1"))
	assert.Equal(t, time.Hour, *d.LunchDuration)

	err = d.ReportLunchDuration("0:30")
	assert.EqualError(t, err, "Date 2014-09-01 already has a lunch duration.")

	d2 := model.NewDay(date(2014, 9, 2))
	require.NoError(t, d2.ReportStartTime("8:00"))
	for _, bad := range []string{"lunch", "-1", "1:75"} {
		assert.ErrorIs(t, d2.ReportLunchDuration(bad), model.ErrReport, bad)
	}
	assert.Nil(t, d2.LunchDuration)
}

func TestReportEndTime(t *testing.T) {
	d := model.NewDay(date(2014, 9, 1))
	assert.EqualError(t, d.ReportEndTime("17:00"),
		"Date 2014-09-01 must have a start time before an end time can be reported.")
	require.NoError(t, d.ReportStartTime("8:00"))
	assert.EqualError(t, d.ReportEndTime("17:00"),
		"Date 2014-09-01 must have a lunch duration before an end time can be reported.")
	require.NoError(t, d.ReportLunchDuration("1:00"))

	assert.ErrorIs(t, d.ReportEndTime("17"), model.ErrBadTime)
	assert.ErrorIs(t, d.ReportEndTime("24:00"), model.ErrBadTime)
	require.NoError(t, d.ReportEndTime("17:00"))
	assert.ErrorIs(t, d.ReportEndTime("18:00"), model.ErrReport)
	assert.True(t, d.Complete())
}

func TestCompleteByType(t *testing.T) {
	d := model.NewDay(date(2014, 9, 1))
	assert.False(t, d.Complete())
	d.SetType(model.Vacation)
	assert.True(t, d.Complete())
	assert.True(t, model.NewDay(date(2014, 9, 6)).Complete())
}

func TestFlextime(t *testing.T) {
	d := model.NewDay(date(2014, 9, 1))
	require.NoError(t, d.Report("8:00", "0:45", "17:00"))
	assert.Equal(t, 8*time.Hour+15*time.Minute, d.WorkedHours())
	assert.Equal(t, 15*time.Minute, d.CalculateFlextime())

	require.NoError(t, d.ReportDeviation("1:00"))
	assert.Equal(t, -45*time.Minute, d.CalculateFlextime())

	require.NoError(t, d.ReportDeviation("-0:30"))
	assert.Equal(t, 45*time.Minute, d.CalculateFlextime())

	assert.ErrorIs(t, d.ReportDeviation("soon"), model.ErrReport)
}

func TestFlextimeIncompleteDayIsZero(t *testing.T) {
	d := model.NewDay(date(2014, 9, 1))
	require.NoError(t, d.ReportStartTime("8:00"))
	assert.Zero(t, d.WorkedHours())
	assert.Zero(t, d.CalculateFlextime())
}

func TestNonWorkingDaysHaveNoFlextime(t *testing.T) {
	for _, typ := range []model.DayType{model.Weekend, model.Holiday, model.Vacation, model.SickDay} {
		d := model.NewDay(date(2014, 9, 1))
		require.NoError(t, d.Report("8:00", "1:00", "18:00"))
		d.SetType(typ)
		assert.Zero(t, d.CalculateFlextime(), typ.String())
	}
}

func TestWorkedHoursUntil(t *testing.T) {
	d := model.NewDay(date(2014, 9, 1))
	_, err := d.WorkedHoursUntil(time.Date(2014, 9, 1, 12, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, model.ErrNotInProgress)

	require.NoError(t, d.ReportStartTime("8:00"))
	got, err := d.WorkedHoursUntil(time.Date(2014, 9, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 4*time.Hour, got)

	require.NoError(t, d.ReportLunchDuration("0:30"))
	require.NoError(t, d.ReportDeviation("0:15"))
	got, err = d.WorkedHoursUntil(time.Date(2014, 9, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Hour+15*time.Minute, got)

	require.NoError(t, d.ReportEndTime("17:00"))
	_, err = d.WorkedHoursUntil(time.Date(2014, 9, 1, 18, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, model.ErrReport)
}

func TestGetInfo(t *testing.T) {
	tests := []struct {
		info, comment string
		want          string
	}{
		{"", "", ""},
		{"Christmas", "", "Christmas"},
		{"", "  went   home early ", "went home early."},
		{"", "Why?", "Why?"},
		{"Midsummer", "worked anyway", "Midsummer. worked anyway."},
		{"Midsummer!", "worked anyway.", "Midsummer! worked anyway."},
	}
	for _, tt := range tests {
		d := model.NewDay(date(2014, 9, 1))
		d.Info = tt.info
		d.Comment = tt.comment
		assert.Equal(t, tt.want, d.GetInfo())
	}
}

func TestExport(t *testing.T) {
	d := model.NewDay(date(2014, 9, 1))
	assert.Equal(t, " 1.", d.Export())

	require.NoError(t, d.Report("8:00", "0:45", "17:05"))
	require.NoError(t, d.ReportDeviation("0:30"))
	d.Comment = "Dentist"
	assert.Equal(t, ` 1. 8:00 0:45 17:05 +0:30 "Dentist"`, d.Export())

	sick := model.NewDay(date(2014, 9, 12))
	sick.SetType(model.SickDay)
	sick.Comment = `caught "the" flu`
	assert.Equal(t, `12. S 'caught "the" flu'`, sick.Export())
}
