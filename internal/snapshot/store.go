// Package snapshot exports the reported days and monthly totals into a
// SQLite database for external tools.
package snapshot

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Tiliavir/chrono/internal/model"
)

// Store writes snapshots with gorm.
type Store struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// Open opens or creates the SQLite database at path and migrates the tables.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database %s: %w", path, err)
	}
	return New(db)
}

// New wraps an open database and migrates the tables.
func New(db *gorm.DB) (*Store, error) {
	log := logrus.WithField("component", "snapshot")
	if err := db.AutoMigrate(&DayRecord{}, &MonthRecord{}); err != nil {
		log.WithError(err).Error("failed to migrate snapshot tables")
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save replaces the stored snapshot with the archived months followed by
// every month of the user, in one transaction. archive may be nil.
func (s *Store) Save(u *model.User, archive *model.Archive) error {
	var months []*model.Month
	if archive != nil {
		months = append(months, archive.Months()...)
	}
	for _, y := range u.Years() {
		months = append(months, y.Months()...)
	}

	var dayRecords []DayRecord
	monthRecords := make([]MonthRecord, 0, len(months))
	for _, m := range months {
		monthRecords = append(monthRecords, MonthRecordOf(m))
		for _, d := range m.Days() {
			dayRecords = append(dayRecords, DayRecordOf(d))
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&DayRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&MonthRecord{}).Error; err != nil {
			return err
		}
		if len(dayRecords) > 0 {
			if err := tx.CreateInBatches(dayRecords, 100).Error; err != nil {
				return err
			}
		}
		if len(monthRecords) > 0 {
			if err := tx.CreateInBatches(monthRecords, 100).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.WithError(err).Error("failed to save snapshot")
		return fmt.Errorf("saving snapshot: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"days":   len(dayRecords),
		"months": len(monthRecords),
	}).Debug("saved snapshot")
	return nil
}

// Days returns the stored day records by date.
func (s *Store) Days() ([]DayRecord, error) {
	var records []DayRecord
	if err := s.db.Order("date").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Months returns the stored month records by month.
func (s *Store) Months() ([]MonthRecord, error) {
	var records []MonthRecord
	if err := s.db.Order("month").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Day returns the record of an ISO date, or nil when there is none.
func (s *Store) Day(iso string) (*DayRecord, error) {
	var r DayRecord
	result := s.db.Where("date = ?", iso).Limit(1).Find(&r)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &r, nil
}
