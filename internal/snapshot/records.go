package snapshot

import (
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

// namespace scopes the name-based row IDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/Tiliavir/chrono/snapshot"))

// DayRecord is one reported day. Durations are stored in minutes.
type DayRecord struct {
	ID               string  `gorm:"primaryKey;size:36" json:"id"`
	Date             string  `gorm:"not null;uniqueIndex;size:10" json:"date"`
	Month            string  `gorm:"not null;index;size:7" json:"month"`
	Week             string  `gorm:"not null;size:8" json:"week"`
	Type             string  `gorm:"not null" json:"type"`
	StartTime        *string `json:"start_time"`
	LunchMinutes     *int    `json:"lunch_minutes"`
	EndTime          *string `json:"end_time"`
	DeviationMinutes int     `gorm:"not null;default:0" json:"deviation_minutes"`
	WorkedMinutes    int     `gorm:"not null;default:0" json:"worked_minutes"`
	FlexMinutes      int     `gorm:"not null;default:0" json:"flex_minutes"`
	Complete         bool    `gorm:"not null" json:"complete"`
	Info             string  `json:"info"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DayRecord) TableName() string {
	return "day_records"
}

// MonthRecord holds the totals of one month.
type MonthRecord struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Month        string `gorm:"not null;uniqueIndex;size:7" json:"month"`
	Days         int    `gorm:"not null;default:0" json:"days"`
	VacationDays int    `gorm:"not null;default:0" json:"vacation_days"`
	SickDays     int    `gorm:"not null;default:0" json:"sick_days"`
	FlexMinutes  int    `gorm:"not null;default:0" json:"flex_minutes"`
	Complete     bool   `gorm:"not null" json:"complete"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (MonthRecord) TableName() string {
	return "month_records"
}

// RowID returns the stable ID for a date or month key.
func RowID(key string) string {
	return uuid.NewSHA1(namespace, []byte(key)).String()
}

func minutes(d time.Duration) int {
	return int(d / time.Minute)
}

// DayRecordOf converts a Day.
func DayRecordOf(d *model.Day) DayRecord {
	iso := timecalc.FormatDate(d.Date)
	r := DayRecord{
		ID:               RowID(iso),
		Date:             iso,
		Month:            timecalc.MonthOf(d.Date).String(),
		Week:             timecalc.ISOWeekLabel(d.Date),
		Type:             d.Type.String(),
		DeviationMinutes: minutes(d.Deviation),
		WorkedMinutes:    minutes(d.WorkedHours()),
		FlexMinutes:      minutes(d.CalculateFlextime()),
		Complete:         d.Complete(),
		Info:             d.GetInfo(),
	}
	if d.StartTime != nil {
		s := timecalc.FormatClock(*d.StartTime)
		r.StartTime = &s
	}
	if d.LunchDuration != nil {
		m := minutes(*d.LunchDuration)
		r.LunchMinutes = &m
	}
	if d.EndTime != nil {
		s := timecalc.FormatClock(*d.EndTime)
		r.EndTime = &s
	}
	return r
}

// MonthRecordOf converts a Month.
func MonthRecordOf(m *model.Month) MonthRecord {
	key := m.YearMonth.String()
	return MonthRecord{
		ID:           RowID(key),
		Month:        key,
		Days:         len(m.Days()),
		VacationDays: m.UsedVacation(nil),
		SickDays:     m.SickDays(),
		FlexMinutes:  minutes(m.CalculateFlextime()),
		Complete:     m.Complete(),
	}
}
