package parser

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

var (
	yearFilePattern = regexp.MustCompile(`^(\d{4})$`)
	holidayPattern  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s*:\s*(?:"([^"]*)"|'([^']*)')$`)
)

// ParseYearFile parses a YYYY.conf holiday file. Every holiday is also
// registered with the attached User.
func (p *Parser) ParseYearFile(path string) (*model.Year, error) {
	name := baseName(path)
	if !yearFilePattern.MatchString(name) {
		return nil, model.ParseError(nil, "File name is not a year file: %q", path)
	}
	year, err := model.NewYear(name)
	if err != nil {
		return nil, err
	}
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	count := 0
	for _, line := range lines {
		line = strings.TrimSpace(stripComment(line))
		if line == "" {
			continue
		}
		m := holidayPattern.FindStringSubmatch(line)
		if m == nil {
			return nil, model.ParseError(nil, "Unable to parse holiday in %s: %q", name, line)
		}
		date, err := timecalc.ParseDate(m[1])
		if err != nil {
			return nil, model.ParseError(err, "Unable to parse holiday date in %s: %q", name, m[1])
		}
		holiday := m[2] + m[3]
		if err := year.AddHoliday(date, holiday); err != nil {
			return nil, model.ParseError(err, "Holiday %s in %s is outside the year.", m[1], name)
		}
		if err := p.registerHoliday(date, holiday); err != nil {
			return nil, err
		}
		count++
	}
	p.log.WithFields(logrus.Fields{"file": path, "holidays": count}).Debug("parsed year file")
	return year, nil
}
