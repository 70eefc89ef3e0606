package parser

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

var monthHeaderPattern = regexp.MustCompile(`^\s*(\d{4}-\d{2})\s*$`)

// ParseArchiveFile parses a file of YYYY-MM headers each followed by a
// month body and archives the months in order.
func (p *Parser) ParseArchiveFile(path string) (*model.Archive, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	if p.Archive == nil {
		p.Archive = model.NewArchive()
	}

	type segment struct {
		ym    timecalc.YearMonth
		lines []string
	}
	var segments []*segment
	for _, line := range lines {
		if m := monthHeaderPattern.FindStringSubmatch(line); m != nil {
			ym, err := timecalc.ParseYearMonth(m[1])
			if err != nil {
				return nil, model.ParseError(err, "Bad month header in archive: %q", m[1])
			}
			segments = append(segments, &segment{ym: ym})
			continue
		}
		if len(segments) == 0 {
			if strings.TrimSpace(line) != "" {
				return nil, model.ParseError(nil, "Archive must start with a month header (e.g. \"YYYY-MM\"), was %q.", line)
			}
			continue
		}
		cur := segments[len(segments)-1]
		cur.lines = append(cur.lines, line)
	}

	for _, s := range segments {
		month, err := p.parseMonthLines(s.ym, s.lines, true)
		if err != nil {
			return nil, err
		}
		if err := p.Archive.ArchiveMonth(month); err != nil {
			return nil, err
		}
	}
	p.log.WithFields(logrus.Fields{"file": path, "months": len(segments)}).Debug("parsed archive file")
	return p.Archive, nil
}
