package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/chrono/internal/model"
)

func fillYear(t *testing.T, y *model.Year) {
	t.Helper()
	for y.NextWorkday().Year() == y.Year {
		d, err := y.AddDay(y.NextWorkday())
		require.NoError(t, err)
		require.NoError(t, d.Report("8:00", "1:00", "17:00"))
	}
}

func TestNewYearBadArguments(t *testing.T) {
	tests := []struct {
		year string
		opts []model.YearOption
		msg  string
	}{
		{"14", nil, `Argument year_string must be a year (e.g. "YYYY"), was "14".`},
		{"Twenty fourteen", nil, `Argument year_string must be a year (e.g. "YYYY"), was "Twenty fourteen".`},
		{"2014-01-01", nil, `Argument year_string must be a year (e.g. "YYYY"), was "2014-01-01".`},
		{"2014", []model.YearOption{model.WithStartDate("1/4 2014")},
			`Argument start_date must be a ISO date string (e.g. "YYYY-MM-DD"), was "1/4 2014".`},
		{"2014", []model.YearOption{model.WithStartDate("2015-01-04")},
			`Argument start_date must be a date in 2014, was "2015-01-04".`},
	}
	for _, tt := range tests {
		_, err := model.NewYear(tt.year, tt.opts...)
		require.ErrorIs(t, err, model.ErrBadDate, tt.year)
		assert.EqualError(t, err, tt.msg)
	}
}

func TestYearNextWorkday(t *testing.T) {
	y, err := model.NewYear("2014")
	require.NoError(t, err)
	assert.Equal(t, date(2014, 1, 1), y.NextWorkday())
	assert.Equal(t, "2014-01", y.NextMonth().String())
	assert.Equal(t, 2015, y.NextYear())
	assert.False(t, y.Complete())
}

func TestYearWithStartDate(t *testing.T) {
	y, err := model.NewYear("2013", model.WithStartDate("2013-09-01"))
	require.NoError(t, err)
	assert.Equal(t, date(2013, 9, 2), y.NextWorkday())
	assert.Equal(t, "2013-09", y.NextMonth().String())

	fillYear(t, y)
	assert.True(t, y.Complete())
	assert.Len(t, y.Months(), 4)
	assert.Equal(t, date(2014, 1, 1), y.NextWorkday())
}

func TestYearWithMidMonthStartDate(t *testing.T) {
	y, err := model.NewYear("2014", model.WithStartDate("2014-09-15"))
	require.NoError(t, err)
	assert.Equal(t, date(2014, 9, 15), y.NextWorkday())

	_, err = y.AddDay(date(2014, 9, 1))
	require.ErrorIs(t, err, model.ErrReport)
	assert.Empty(t, y.Months())

	_, err = y.AddDay(date(2014, 9, 15))
	require.NoError(t, err)
	assert.Len(t, y.Months(), 1)
}

func TestYearAddDayWrongYear(t *testing.T) {
	y, err := model.NewYear("2014")
	require.NoError(t, err)
	_, err = y.AddDay(date(2015, 1, 1))
	require.ErrorIs(t, err, model.ErrReport)
	assert.EqualError(t, err, "New date string didn't match year. 2014 doesn't include 2015-01-01.")
}

func TestYearRollsIntoNewMonth(t *testing.T) {
	y, err := model.NewYear("2014", model.WithStartDate("2014-09-30"))
	require.NoError(t, err)
	d, err := y.AddDay(date(2014, 9, 30))
	require.NoError(t, err)

	_, err = y.AddDay(date(2014, 10, 1))
	require.EqualError(t, err, "New days can't be added while the report for a previous day is incomplete.")
	assert.Len(t, y.Months(), 1)

	require.NoError(t, d.Report("8:00", "1:00", "17:00"))
	_, err = y.AddDay(date(2014, 10, 1))
	require.NoError(t, err)
	assert.Len(t, y.Months(), 2)
	assert.Equal(t, time.October, y.LastMonth().Month)
}

func TestYearWithHolidays(t *testing.T) {
	y, err := model.NewYear("2014")
	require.NoError(t, err)
	assert.Equal(t, date(2014, 1, 1), y.NextWorkday())

	require.NoError(t, y.AddHoliday(date(2014, 1, 1), "New years day"))
	assert.Equal(t, date(2014, 1, 2), y.NextWorkday())

	d, err := y.AddDay(date(2014, 1, 2))
	require.NoError(t, err)
	require.NoError(t, d.Report("8:00", "1:00", "17:00"))
	assert.Zero(t, y.CalculateFlextime())

	require.NoError(t, y.AddHoliday(date(2014, 1, 2), "Ancestry day"))
	assert.Equal(t, model.Holiday, d.Type)
	assert.Equal(t, "Ancestry day", d.Info)
	assert.Equal(t, 8*time.Hour, d.WorkedHours())
	assert.Zero(t, y.CalculateFlextime())

	assert.ErrorIs(t, y.AddHoliday(date(2015, 1, 1), "New years day"), model.ErrBadDate)
}

func TestYearHolidaysSeedNewMonths(t *testing.T) {
	y, err := model.NewYear("2014", model.WithStartDate("2014-04-30"))
	require.NoError(t, err)
	require.NoError(t, y.AddHoliday(date(2014, 5, 1), "Labour day"))

	d, err := y.AddDay(date(2014, 4, 30))
	require.NoError(t, err)
	require.NoError(t, d.Report("8:00", "1:00", "17:00"))
	assert.Equal(t, date(2014, 5, 2), y.NextWorkday())

	_, err = y.AddDay(date(2014, 5, 2))
	require.NoError(t, err)
	assert.Equal(t, "Labour day", y.LastMonth().Holidays()["2014-05-01"])
}

func TestYearFlextimeAndCounts(t *testing.T) {
	y, err := model.NewYear("2014", model.WithFlextime(2*time.Hour), model.WithStartDate("2014-09-01"))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, y.CalculateFlextime())

	d, _ := y.AddDay(date(2014, 9, 1))
	require.NoError(t, d.Report("8:00", "1:00", "17:30"))
	d, _ = y.AddDay(date(2014, 9, 2))
	d.SetType(model.SickDay)
	d, _ = y.AddDay(date(2014, 9, 3))
	d.SetType(model.Vacation)

	assert.Equal(t, 2*time.Hour+30*time.Minute, y.CalculateFlextime())
	assert.Equal(t, 1, y.SickDays())
	assert.Equal(t, 1, y.UsedVacation(nil))
}

func TestYearKeepsWeekendInItsMonth(t *testing.T) {
	y, err := model.NewYear("2014", model.WithStartDate("2014-08-29"))
	require.NoError(t, err)
	d, err := y.AddDay(date(2014, 8, 29))
	require.NoError(t, err)
	require.NoError(t, d.Report("8:00", "1:00", "17:00"))

	sat, err := y.AddDay(date(2014, 8, 30))
	require.NoError(t, err)
	assert.Equal(t, model.Weekend, sat.Type)
	assert.Len(t, y.Months(), 1)
	assert.Equal(t, time.August, y.LastMonth().Month)

	_, err = y.AddDay(date(2014, 9, 2))
	assert.EqualError(t, err, "New work days must be added consecutively. Expected 2014-09-01, got 2014-09-02.")
	assert.Len(t, y.Months(), 1)

	_, err = y.AddDay(date(2014, 9, 1))
	require.NoError(t, err)
	assert.Len(t, y.Months(), 2)
}

func TestYearAddDayBeforeLastMonth(t *testing.T) {
	y, err := model.NewYear("2014", model.WithStartDate("2014-12-30"))
	require.NoError(t, err)
	for _, day := range []int{30, 31} {
		d, err := y.AddDay(date(2014, 12, day))
		require.NoError(t, err)
		require.NoError(t, d.Report("8:00", "1:00", "17:00"))
	}
	assert.Equal(t, date(2015, 1, 1), y.NextWorkday())

	_, err = y.AddDay(date(2014, 11, 28))
	require.ErrorIs(t, err, model.ErrReport)
	assert.EqualError(t, err, "New days must be added in chronological order. 2014-11-28 is not after 2014-12-31.")
	assert.Len(t, y.Months(), 1)
}
