package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/chrono/internal/model"
)

func TestNewWeek(t *testing.T) {
	w, err := model.NewWeek(2015, 7)
	require.NoError(t, err)
	assert.Equal(t, 2015, w.Year)
	assert.Equal(t, 7, w.Number)
	assert.Equal(t, date(2015, 2, 9), w.Monday().Date)
	assert.Equal(t, date(2015, 2, 15), w.Sunday().Date)
	assert.Len(t, w.Days(), 7)
	assert.Equal(t, model.Weekend, w.Saturday().Type)
	assert.Same(t, w.Wednesday(), w.Day(time.Wednesday))
	assert.Same(t, w.Sunday(), w.Day(time.Sunday))

	_, err = model.NewWeek(2014, 53)
	assert.ErrorIs(t, err, model.ErrBadDate)
}

func TestWeekFromOneDay(t *testing.T) {
	d := model.NewDay(date(2015, 2, 16))
	w, err := model.WeekFromDays(d)
	require.NoError(t, err)
	assert.Equal(t, 8, w.Number)
	assert.Same(t, d, w.Monday())
	assert.Equal(t, date(2015, 2, 22), w.Sunday().Date)
	assert.False(t, w.Owns(d))
	assert.True(t, w.Owns(w.Tuesday()))
}

func TestWeekFromSevenDays(t *testing.T) {
	var days []*model.Day
	for i := 0; i < 7; i++ {
		days = append(days, model.NewDay(date(2015, 2, 9+i)))
	}
	w, err := model.WeekFromDays(days[3], days[0], days[6], days[1], days[5], days[2], days[4])
	require.NoError(t, err)
	for i, d := range w.Days() {
		assert.Same(t, days[i], d)
	}
}

func TestWeekFromDaysErrors(t *testing.T) {
	_, err := model.WeekFromDays(model.NewDay(date(2015, 3, 15)), model.NewDay(date(2015, 3, 15)))
	require.ErrorIs(t, err, model.ErrBadDate)
	assert.EqualError(t, err, "The same date (2015-03-15) was added multiple times to week.")

	_, err = model.WeekFromDays(model.NewDay(date(2015, 3, 15)), model.NewDay(date(2015, 3, 16)))
	require.ErrorIs(t, err, model.ErrBadDate)
	assert.EqualError(t, err, "All added days doesn't belong to the same week.")

	_, err = model.WeekFromDays()
	assert.ErrorIs(t, err, model.ErrBadDate)
}

func TestWeekFlextime(t *testing.T) {
	monday := model.NewDay(date(2015, 2, 9))
	require.NoError(t, monday.Report("8:00", "1:00", "18:00"))
	w, err := model.WeekFromDays(monday)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, w.CalculateFlextime())

	var days []*model.Day
	for i := 0; i < 5; i++ {
		d := model.NewDay(date(2015, 2, 9+i))
		require.NoError(t, d.Report("8:00", "0:30", "17:00"))
		days = append(days, d)
	}
	w, err = model.WeekFromDays(days...)
	require.NoError(t, err)
	assert.Equal(t, 150*time.Minute, w.CalculateFlextime())
}
