package parser

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Tiliavir/chrono/internal/model"
	"github.com/Tiliavir/chrono/internal/storage"
)

// LoadDataFolder parses a whole data folder: the year files, the user
// profile, the archive when archivePath names an existing file, and then
// every month file in order.
func LoadDataFolder(dir, archivePath string, opts ...Option) (*Parser, error) {
	p := New(opts...)

	years, err := storage.YearFiles(dir)
	if err != nil {
		return nil, err
	}
	for _, path := range years {
		if _, err := p.ParseYearFile(path); err != nil {
			return nil, err
		}
	}

	if path, ok := storage.UserFile(dir); ok {
		if _, err := p.ParseUserFile(path); err != nil {
			return nil, err
		}
	} else {
		u, err := model.NewUser(model.DefaultProfile())
		if err != nil {
			return nil, err
		}
		if err := p.attachUser(u); err != nil {
			return nil, err
		}
	}

	if archivePath != "" {
		if _, err := os.Stat(archivePath); err == nil {
			archive, err := p.ParseArchiveFile(archivePath)
			if err != nil {
				return nil, err
			}
			if err := p.User.CarryArchive(archive); err != nil {
				return nil, err
			}
		}
	}

	months, err := storage.MonthFiles(dir)
	if err != nil {
		return nil, err
	}
	for _, path := range months {
		if _, err := p.ParseMonthFile(path); err != nil {
			return nil, err
		}
	}

	p.log.WithFields(logrus.Fields{
		"dir":    dir,
		"years":  len(years),
		"months": len(months),
		"days":   len(p.User.AllDays()),
	}).Debug("loaded data folder")
	return p, nil
}
