package history

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DefaultLimit caps Recent when no limit is given.
const DefaultLimit = 20

// Repository stores run history.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a Repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the history table.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("failed to migrate history: %w", err)
	}
	return nil
}

// Record inserts entries in one batch.
func (r *Repository) Record(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&entries).Error; err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	return nil
}

// Recent returns the latest entries of a region, newest first.
func (r *Repository) Recent(ctx context.Context, region string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var entries []Entry
	err := r.db.WithContext(ctx).
		Where("region = ?", region).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return entries, nil
}
