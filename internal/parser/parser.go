// Package parser reads the text files of a chrono data folder into the
// report model.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

// Parser turns user, year, month and archive files into model values. With
// a User attached, reported days are added through the User.
type Parser struct {
	User    *model.User
	Archive *model.Archive

	holidays map[string]string
	log      logrus.FieldLogger
}

// Option configures a Parser.
type Option func(*Parser)

// WithUser attaches a User that receives all parsed days and holidays.
func WithUser(u *model.User) Option {
	return func(p *Parser) { p.User = u }
}

// WithLogger sets the logger; the standard logrus logger is used by default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Parser) { p.log = l }
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{holidays: map[string]string{}, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Holidays returns every holiday seen in parsed year files, keyed by ISO date.
func (p *Parser) Holidays() map[string]string {
	return p.holidays
}

func (p *Parser) registerHoliday(date time.Time, name string) error {
	p.holidays[timecalc.FormatDate(date)] = name
	if p.User != nil {
		return p.User.AddHoliday(date, name)
	}
	return nil
}

// readLines returns the lines of a file without line terminators.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()
	lines, err := scanLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

func scanLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

// stripComment cuts a line at the first # that is not inside quotes.
func stripComment(line string) string {
	var quote rune
	for i, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '#':
			return line[:i]
		}
	}
	return line
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
