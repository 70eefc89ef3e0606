package parser

import (
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

var (
	dayPattern   = regexp.MustCompile(`^\s*(\d{1,2})\.(.*)$`)
	clockPattern = regexp.MustCompile(`^[+-]?\d{1,2}[:.]\d{2}$`)
	hourPattern  = regexp.MustCompile(`^[+-]?\d{1,2}$`)
)

type slot int

const (
	startSlot slot = iota
	lunchSlot
	endSlot
	deviationSlot
)

var slotNames = [...]string{"start time", "lunch duration", "end time", "deviation"}

// ParseMonthFile parses a YYYY-MM.txt report file.
func (p *Parser) ParseMonthFile(path string) (*model.Month, error) {
	ym, err := timecalc.ParseYearMonth(baseName(path))
	if err != nil {
		return nil, model.ParseError(err, "File name is not a month file: %q", path)
	}
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{"file": path, "lines": len(lines)}).Debug("parsing month file")
	return p.parseMonthLines(ym, lines, p.User == nil)
}

// ParseMonth parses month report text for the given month.
func (p *Parser) ParseMonth(ym timecalc.YearMonth, r io.Reader) (*model.Month, error) {
	lines, err := scanLines(r)
	if err != nil {
		return nil, err
	}
	return p.parseMonthLines(ym, lines, p.User == nil)
}

// parseMonthLines adds one day per non-blank line. Standalone months are
// built on their own and seeded with the holidays parsed so far; otherwise
// days go through the attached User.
func (p *Parser) parseMonthLines(ym timecalc.YearMonth, lines []string, standalone bool) (*model.Month, error) {
	var month *model.Month
	if standalone {
		month = model.NewMonth(ym)
		for iso, name := range p.holidays {
			if d, err := timecalc.ParseDate(iso); err == nil && ym.Contains(d) {
				month.AddHoliday(d, name)
			}
		}
	}

	for n, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := p.parseDayLine(ym, month, line); err != nil {
			p.log.WithFields(logrus.Fields{"month": ym.String(), "line": n + 1}).Debug(err)
			return nil, err
		}
	}

	if standalone {
		return month, nil
	}
	if m := p.User.Month(ym); m != nil {
		return m, nil
	}
	return model.NewMonth(ym), nil
}

func (p *Parser) parseDayLine(ym timecalc.YearMonth, month *model.Month, line string) error {
	m := dayPattern.FindStringSubmatch(line)
	if m == nil {
		return model.ParseError(nil, "Unable to parse line in %s: %q", ym, strings.TrimSpace(line))
	}
	n, _ := strconv.Atoi(m[1])
	date := timecalc.Date(ym.Year, ym.Month, n)
	if n == 0 || !ym.Contains(date) {
		return model.ParseError(nil, "Day %d is not a date in %s.", n, ym)
	}
	iso := timecalc.FormatDate(date)

	fields, comment, err := splitComment(m[2], iso)
	if err != nil {
		return err
	}

	var day *model.Day
	if month != nil {
		day, err = month.AddDay(date)
	} else {
		day, err = p.User.AddDay(date)
	}
	if err != nil {
		return err
	}

	tokens := strings.Fields(fields)
	next := startSlot
	for i, tok := range tokens {
		if i == 0 {
			if t, ok := model.ParseDayType(tok); ok {
				day.SetType(t)
				continue
			}
		}
		if next > deviationSlot {
			return model.ParseError(nil, "Unexpected token for date %s: '%s'", iso, tok)
		}
		if err := reportToken(day, next, tok, iso); err != nil {
			return err
		}
		next++
	}
	day.Comment = comment
	return nil
}

func reportToken(day *model.Day, s slot, tok, iso string) error {
	clock := clockPattern.MatchString(tok)
	hour := hourPattern.MatchString(tok)
	if !clock && !hour {
		return model.ParseError(nil, "Unable to parse %s for date %s: '%s'", slotNames[s], iso, tok)
	}

	var err error
	switch s {
	case startSlot:
		if !clock {
			return model.ParseError(nil, "Start time for date %s must be given as H:MM, was '%s'", iso, tok)
		}
		err = day.ReportStartTime(tok)
	case lunchSlot:
		err = day.ReportLunchDuration(tok)
	case endSlot:
		if !clock {
			return model.ParseError(nil, "End time for date %s must be given as H:MM, was '%s'", iso, tok)
		}
		err = day.ReportEndTime(tok)
	case deviationSlot:
		err = day.ReportDeviation(tok)
	}
	if err != nil && (errors.Is(err, timecalc.ErrBadClock) || errors.Is(err, timecalc.ErrBadDuration)) {
		return model.ParseError(err, "Unable to parse %s for date %s: '%s'", slotNames[s], iso, tok)
	}
	return err
}

// splitComment separates a trailing quoted comment from the report fields.
func splitComment(rest, iso string) (string, string, error) {
	i := strings.IndexAny(rest, `"'`)
	if i < 0 {
		return rest, "", nil
	}
	trimmed := strings.TrimRight(rest, " \t")
	j := len(trimmed) - 1
	closing := trimmed[j]
	if j == i || (closing != '"' && closing != '\'') {
		return "", "", model.ParseError(nil, "Unmatched quote in comment for date %s.", iso)
	}
	if closing != rest[i] {
		return "", "", model.ParseError(nil, "Mismatched quotes in comment for date %s.", iso)
	}
	return rest[:i], trimmed[i+1 : j], nil
}
