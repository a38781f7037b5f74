// Package searches provides the append-only log of catalog searches.
package searches

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/entities"
)

// Repository handles all search log database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new search log repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Append records a search query.
func (r *Repository) Append(ctx context.Context, text string) error {
	entry := &entities.SearchQuery{Text: text, CreatedAt: time.Now()}
	return r.db.WithContext(ctx).Create(entry).Error
}

// Recent returns the text of the n most recent searches, newest first.
func (r *Repository) Recent(ctx context.Context, n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}

	var entries []entities.SearchQuery
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(n).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	return texts, nil
}

// Count returns the number of logged searches. The prune task reports it after
// each run.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.SearchQuery{}).Count(&count).Error
	return count, err
}

// DeleteOlderThan removes searches submitted before the cutoff.
// Returns the number of deleted entries.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&entities.SearchQuery{})
	return result.RowsAffected, result.Error
}
