package model

import (
	"time"

	"github.com/Tiliavir/chrono/internal/timecalc"
)

// Archive is the append-only history of completed months.
type Archive struct {
	months []*Month
}

// NewArchive creates an empty Archive.
func NewArchive() *Archive {
	return &Archive{}
}

// Months returns the archived months in order.
func (a *Archive) Months() []*Month {
	return a.months
}

// ArchiveMonth appends a complete Month that directly follows the last
// archived one.
func (a *Archive) ArchiveMonth(m *Month) error {
	for _, old := range a.months {
		if old.YearMonth == m.YearMonth {
			return ReportError("Month %s is already archived.", m.YearMonth)
		}
	}
	if next, ok := a.NextMonth(); ok && next != m.YearMonth {
		return ReportError("Months must be archived sequentially. Expected %s, got %s.", next, m.YearMonth)
	}
	if !m.Complete() {
		return ReportError("Month still has unreported workdays and can't be archived.")
	}
	a.months = append(a.months, m)
	return nil
}

// NextMonth returns the month following the last archived one; ok is false
// for an empty archive.
func (a *Archive) NextMonth() (next timecalc.YearMonth, ok bool) {
	if len(a.months) == 0 {
		return timecalc.YearMonth{}, false
	}
	return a.months[len(a.months)-1].NextMonth(), true
}

// CalculateFlextime sums the flextime of all archived months.
func (a *Archive) CalculateFlextime() time.Duration {
	var total time.Duration
	for _, m := range a.months {
		total += m.CalculateFlextime()
	}
	return total
}

// UsedVacation counts vacation days of all archived months, bounded to
// dates up to asOf when given.
func (a *Archive) UsedVacation(asOf *time.Time) int {
	n := 0
	for _, m := range a.months {
		n += m.UsedVacation(asOf)
	}
	return n
}

// SickDays counts sick days of all archived months.
func (a *Archive) SickDays() int {
	n := 0
	for _, m := range a.months {
		n += m.SickDays()
	}
	return n
}
