// Package kvstore persists small text documents under fixed keys using gorm.
package kvstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateEntry is one stored document.
type StateEntry struct {
	Key       string    `gorm:"primaryKey;column:state_key;size:64"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the default table name.
func (StateEntry) TableName() string {
	return "state_entries"
}

// Store reads and overwrites documents by key.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on db. The state_entries table must exist (see Migrate).
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the state_entries table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&StateEntry{})
}

// Load returns the document stored under key. found is false when the key was never saved.
func (s *Store) Load(ctx context.Context, key string) (value []byte, found bool, err error) {
	var e StateEntry
	err = s.db.WithContext(ctx).Where("state_key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(e.Value), true, nil
}

// Save overwrites the document stored under key.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	e := StateEntry{Key: key, Value: string(value), UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}
