package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Tiliavir/chrono/internal/config"
	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/parser"
	"github.com/Tiliavir/chrono/internal/storage"
	"github.com/Tiliavir/chrono/internal/timecalc"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

// session is a loaded data folder.
type session struct {
	cfg    config.Config
	dir    string
	parser *parser.Parser
	user   *model.User
}

// loadSession reads the config and parses the whole data folder.
func loadSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dataFolderFlag != "" {
		cfg.DataFolder = dataFolderFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return openSession(cfg)
}

func openSession(cfg config.Config) (*session, error) {
	if err := os.MkdirAll(cfg.DataFolder, 0o700); err != nil {
		return nil, fmt.Errorf("creating data folder: %w", err)
	}
	p, err := parser.LoadDataFolder(cfg.DataFolder, cfg.ArchivePath())
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, dir: cfg.DataFolder, parser: p, user: p.User}, nil
}

// reportDay returns the day to report on date: the latest reported day, or
// a new day when date is the next workday.
func (s *session) reportDay(date time.Time) (*model.Day, error) {
	if d := s.user.Day(date); d != nil {
		if latest := s.user.Today(); d != latest {
			return nil, model.ReportError("Only the latest reported day (%s) can be changed; use \"chrono edit\" for older days.",
				timecalc.FormatDate(latest.Date))
		}
		return d, nil
	}
	return s.user.AddDay(date)
}

// save writes the day's line into its month file.
func (s *session) save(d *model.Day) error {
	path := storage.MonthFilePath(s.dir, timecalc.MonthOf(d.Date))
	if err := storage.WriteLine(path, d.Export()); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"file": path, "date": timecalc.FormatDate(d.Date)}).Debug("saved day")
	return nil
}

// dateArg parses an optional YYYY-MM-DD argument, defaulting to today.
func dateArg(text string) (time.Time, error) {
	if text == "" {
		return timecalc.Truncate(nowFunc()), nil
	}
	d, err := timecalc.ParseDate(text)
	if err != nil {
		return time.Time{}, model.BadDate("Bad date: %q. Use YYYY-MM-DD.", text)
	}
	return d, nil
}

// clockArg returns text, or the current time as H:MM when text is empty.
func clockArg(text string) string {
	if text == "" {
		return timecalc.FormatClock(nowFunc())
	}
	return text
}
