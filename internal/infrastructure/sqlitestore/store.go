package sqlitestore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/oksasatya/campus-connect/internal/domain/repository"
)

// Document is one row of the documents table.
type Document struct {
	Key       string `gorm:"primaryKey"`
	Body      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// Store keeps documents in a single SQLite file.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the database at path and migrates the documents table.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context, key string, dest any) (bool, error) {
	var doc Document
	err := s.db.WithContext(ctx).First(&doc, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(doc.Body, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Save(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	doc := Document{Key: key, Body: b}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(&doc).Error
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&Document{}, "key = ?", key).Error
}

// Ping reports whether the database file is still reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ repository.DocumentStore = (*Store)(nil)
