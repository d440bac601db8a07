package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxSQLValueSize is the largest value SQLStore accepts. The size tag makes
// MySQL pick mediumtext; Postgres uses text.
const MaxSQLValueSize = 16777215

// Entry is one row of the key-value table.
type Entry struct {
	Key       string    `gorm:"primaryKey;size:191"`
	Value     string    `gorm:"size:16777215;not null"`
	UpdatedAt time.Time
}

// TableName pins the table name regardless of naming strategy.
func (Entry) TableName() string {
	return "kv_entries"
}

// SQLStore keeps values in a single GORM-managed table.
type SQLStore struct {
	db *gorm.DB
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore wraps an open GORM connection.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates the key-value table. When reset is set the table is dropped first.
func (s *SQLStore) Migrate(reset bool) error {
	if reset {
		if err := s.db.Migrator().DropTable(&Entry{}); err != nil {
			return err
		}
	}
	return s.db.AutoMigrate(&Entry{})
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry Entry
	err := s.db.WithContext(ctx).Where(&Entry{Key: key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(entry.Value), nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	if len(value) > MaxSQLValueSize {
		return fmt.Errorf("value of %s is %d bytes, limit is %d", key, len(value), MaxSQLValueSize)
	}
	entry := Entry{Key: key, Value: string(value)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&Entry{Key: key}).Error
}
