package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NH-Portal/portal-service/internal/recordstore"
)

// documentRow maps one record-store document onto a JSONB table so the
// portal can run against Postgres with the same document semantics as
// the redis driver.
type documentRow struct {
	Collection string         `gorm:"primaryKey;size:64"`
	Key        string         `gorm:"primaryKey;size:128"`
	Data       datatypes.JSON `gorm:"not null"`
	UpdatedAt  time.Time
}

func (documentRow) TableName() string {
	return "documents"
}

// Store is a Postgres-backed document store built on GORM.
type Store struct {
	db *gorm.DB
}

// New opens the database and ensures the documents table exists.
func New(databaseURL string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("migrate documents table: %w", err)
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an existing GORM connection (used by tests).
func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, collection, key string) (*recordstore.Document, error) {
	var row documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ? AND key = ?", collection, key).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recordstore.ErrNotFound
		}
		return nil, fmt.Errorf("select document: %w", err)
	}

	return &recordstore.Document{Key: row.Key, Data: json.RawMessage(row.Data)}, nil
}

func (s *Store) GetAll(ctx context.Context, collection string) ([]recordstore.Document, error) {
	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("key").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("select collection: %w", err)
	}

	return rowsToDocuments(rows), nil
}

var orderFieldPattern = regexp.MustCompile(`^[a-z_]+$`)

func (s *Store) QueryOrdered(ctx context.Context, collection, field string) ([]recordstore.Document, error) {
	if !orderFieldPattern.MatchString(field) {
		return nil, fmt.Errorf("invalid order field %q", field)
	}

	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order(fmt.Sprintf("data->>'%s' DESC, key", field)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("select ordered collection: %w", err)
	}

	return rowsToDocuments(rows), nil
}

func (s *Store) Set(ctx context.Context, collection, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	row := documentRow{
		Collection: collection,
		Key:        key,
		Data:       datatypes.JSON(data),
		UpdatedAt:  time.Now(),
	}

	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, collection, key string, fields map[string]interface{}) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row documentRow
		err := tx.Where("collection = ? AND key = ?", collection, key).First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return recordstore.ErrNotFound
			}
			return fmt.Errorf("select document: %w", err)
		}

		var merged map[string]interface{}
		if err := json.Unmarshal(row.Data, &merged); err != nil {
			return fmt.Errorf("unmarshal record: %w", err)
		}
		for name, value := range fields {
			merged[name] = value
		}

		data, err := json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}

		return tx.Model(&documentRow{}).
			Where("collection = ? AND key = ?", collection, key).
			Updates(map[string]interface{}{"data": datatypes.JSON(data), "updated_at": time.Now()}).
			Error
	})
}

func (s *Store) Delete(ctx context.Context, collection, key string) error {
	err := s.db.WithContext(ctx).
		Where("collection = ? AND key = ?", collection, key).
		Delete(&documentRow{}).Error
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *Store) Push(ctx context.Context, collection string, value interface{}) (string, error) {
	key := uuid.NewString()
	if err := s.Set(ctx, collection, key, value); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Store) Exists(ctx context.Context, collection, key string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&documentRow{}).
		Where("collection = ? AND key = ?", collection, key).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count document: %w", err)
	}
	return count > 0, nil
}

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

func rowsToDocuments(rows []documentRow) []recordstore.Document {
	docs := make([]recordstore.Document, len(rows))
	for i, row := range rows {
		docs[i] = recordstore.Document{Key: row.Key, Data: json.RawMessage(row.Data)}
	}
	return docs
}
