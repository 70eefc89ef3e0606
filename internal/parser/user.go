package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

var (
	keyValuePattern   = regexp.MustCompile(`^([A-Za-z][A-Za-z \t]*?)\s*[:=]\s*(.*?)$`)
	namePattern       = regexp.MustCompile(`^(\S+)\s+(\S+)$`)
	employmentPattern = regexp.MustCompile(`^(\d+)\s*%$`)
	integerPattern    = regexp.MustCompile(`^\d+$`)
)

// ParseUserFile parses a user.conf profile and attaches the resulting User.
// Unknown keys are ignored and absent keys keep their defaults.
func (p *Parser) ParseUserFile(path string) (*model.User, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	profile := model.DefaultProfile()
	var flextime time.Duration
	for _, line := range lines {
		line = strings.TrimSpace(stripComment(line))
		if line == "" {
			continue
		}
		m := keyValuePattern.FindStringSubmatch(line)
		if m == nil {
			p.log.WithField("line", line).Debug("ignoring user file line")
			continue
		}
		key := strings.ToLower(strings.Join(strings.Fields(m[1]), " "))
		value := strings.Trim(m[2], `"'`)

		switch key {
		case "name":
			if !namePattern.MatchString(value) {
				return nil, model.ParseError(nil, "Name must be a first and a last name, was %q.", value)
			}
			profile.Name = value
		case "employment":
			em := employmentPattern.FindStringSubmatch(value)
			if em == nil {
				return nil, model.ParseError(nil, "Employment must be a percentage (e.g. \"100 %%\"), was %q.", value)
			}
			profile.Employment, _ = strconv.Atoi(em[1])
		case "payed vacation":
			if profile.PayedVacation, err = parseInt(key, value); err != nil {
				return nil, err
			}
		case "extra vacation":
			if profile.ExtraVacation, err = parseInt(key, value); err != nil {
				return nil, err
			}
		case "vacation month":
			n, err := parseInt(key, value)
			if err != nil {
				return nil, err
			}
			if n < 1 || n > 12 {
				return nil, model.ParseError(nil, "Vacation month must be between 1 and 12, was %d.", n)
			}
			profile.VacationMonth = time.Month(n)
		case "employed date":
			d, err := timecalc.ParseDate(value)
			if err != nil {
				return nil, model.ParseError(err, "Employed date must be a date (e.g. \"YYYY-MM-DD\"), was %q.", value)
			}
			profile.EmployedDate = &d
		case "flextime":
			if flextime, err = timecalc.ParseDuration(value); err != nil {
				return nil, model.ParseError(err, "Flextime must be a duration (e.g. \"-1:30\"), was %q.", value)
			}
		default:
			p.log.WithField("key", key).Debug("ignoring unknown user setting")
		}
	}

	user, err := model.NewUser(profile)
	if err != nil {
		return nil, model.ParseError(err, "Bad employment date in %s: %s", baseName(path), err)
	}
	user.Flextime = flextime
	if err := p.attachUser(user); err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{"file": path, "name": profile.Name}).Debug("parsed user file")
	return user, nil
}

func parseInt(key, value string) (int, error) {
	if !integerPattern.MatchString(value) {
		return 0, model.ParseError(nil, "%s must be a whole number, was %q.", strings.ToUpper(key[:1])+key[1:], value)
	}
	return strconv.Atoi(value)
}

// attachUser routes further parsing through u and hands it the holidays
// parsed so far.
func (p *Parser) attachUser(u *model.User) error {
	for iso, name := range p.holidays {
		d, _ := timecalc.ParseDate(iso)
		if err := u.AddHoliday(d, name); err != nil {
			return err
		}
	}
	p.User = u
	return nil
}
