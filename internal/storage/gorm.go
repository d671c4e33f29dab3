package storage

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"voice-bot/internal/profile"
)

// userRecord is the single-table relational schema: one row per user
// holding the JSON state document.
type userRecord struct {
	UserID    int64  `gorm:"primaryKey;column:user_id"`
	Document  string `gorm:"column:document;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRecord) TableName() string {
	return "user_records"
}

// GormStore implements Store on top of GORM with a SQLite database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens (and migrates) the database at path.
func NewGormStore(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}

	if err := db.AutoMigrate(&userRecord{}); err != nil {
		return nil, fmt.Errorf("migrate user_records: %w", err)
	}

	log.Infof("Opened SQLite state store: %s", path)
	return &GormStore{db: db}, nil
}

// Load returns the user's record, or a default record for unknown users.
func (s *GormStore) Load(userID int64) (*profile.Record, error) {
	var row userRecord
	err := s.db.First(&row, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return profile.NewRecord(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user %d: %w", userID, err)
	}

	rec, err := decodeRecord([]byte(row.Document))
	if err != nil {
		// A corrupt row should not lock the user out forever.
		log.Errorf("Corrupt state document for user %d, resetting: %v", userID, err)
		return profile.NewRecord(), nil
	}
	return rec, nil
}

// Save upserts the user's record.
func (s *GormStore) Save(userID int64, rec *profile.Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return fmt.Errorf("encode user %d: %w", userID, err)
	}

	row := userRecord{UserID: userID, Document: string(data)}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert user %d: %w", userID, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
