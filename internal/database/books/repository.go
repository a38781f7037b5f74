// Package books provides database operations for library entries.
//
// This package implements the library.BookStore interface.
//
// # Listing
//
// FindBooks turns a Query into a single SELECT. Listings scan into
// entities.BookSummary, which has no cover column, so cover payloads are never
// read for list requests.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	page, err := repo.FindBooks(ctx, books.Query{Title: "dune", Order: books.OrderRatingDesc, Limit: 10})
package books

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/entities"
)

// Order selects the sort key of a listing.
type Order string

const (
	OrderNewest     Order = "newest"
	OrderRatingAsc  Order = "ratingAsc"
	OrderRatingDesc Order = "ratingDesc"
)

// summaryColumns are the columns selected for listings. cover_base64 and the
// *_fold search columns are never among them.
var summaryColumns = []string{"id", "title", "author", "year", "review", "rating", "created_at", "updated_at"}

// Query describes a filtered, sorted and paginated listing.
// Empty string filters impose no constraint. A Limit <= 0 means no limit.
type Query struct {
	Title           string
	Author          string
	ExcludeNoReview bool
	Order           Order
	Offset          int
	Limit           int
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook inserts a new book. The ID and timestamps are filled in on success.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// GetBookByID retrieves a book including its cover. Returns nil, nil when absent.
func (r *Repository) GetBookByID(ctx context.Context, id string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAllBooks returns every book without cover payloads, in insertion order.
func (r *Repository) GetAllBooks(ctx context.Context) ([]entities.BookSummary, error) {
	var books []entities.BookSummary
	err := r.db.WithContext(ctx).
		Model(&entities.Book{}).
		Select(summaryColumns).
		Order("created_at ASC").
		Find(&books).Error
	return books, err
}

// FindBooks runs a listing query.
func (r *Repository) FindBooks(ctx context.Context, q Query) ([]entities.BookSummary, error) {
	books := make([]entities.BookSummary, 0)
	err := r.buildQuery(r.db.WithContext(ctx), q).Find(&books).Error
	return books, err
}

func (r *Repository) buildQuery(db *gorm.DB, q Query) *gorm.DB {
	tx := db.Model(&entities.Book{}).Select(summaryColumns)

	// SQLite LOWER() only folds ASCII, so the filters match the *_fold columns.
	if q.Title != "" {
		tx = tx.Where(`title_fold LIKE ? ESCAPE '\'`, containsPattern(entities.Fold(q.Title)))
	}
	if q.Author != "" {
		tx = tx.Where(`author_fold LIKE ? ESCAPE '\'`, containsPattern(entities.Fold(q.Author)))
	}
	if q.ExcludeNoReview {
		tx = tx.Where("review IS NOT NULL AND review <> ''")
	}

	switch q.Order {
	case OrderRatingAsc:
		tx = tx.Order("rating ASC")
	case OrderRatingDesc:
		tx = tx.Order("rating DESC")
	default:
		tx = tx.Order("created_at DESC")
	}

	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx
}

// UpdateBookFields sets the given columns on one book. Returns false when no
// book has that ID.
func (r *Repository) UpdateBookFields(ctx context.Context, id string, fields map[string]any) (bool, error) {
	if len(fields) == 0 {
		var count int64
		err := r.db.WithContext(ctx).Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error
		return count > 0, err
	}
	result := r.db.WithContext(ctx).Model(&entities.Book{}).Where("id = ?", id).Updates(fields)
	return result.RowsAffected > 0, result.Error
}

// SetCover stores a cover payload for a book.
func (r *Repository) SetCover(ctx context.Context, id string, cover string) (bool, error) {
	return r.UpdateBookFields(ctx, id, map[string]any{"cover_base64": cover})
}

// DeleteBook removes a book. Deleting a missing book is not an error.
func (r *Repository) DeleteBook(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Book{})
	return result.RowsAffected, result.Error
}

// containsPattern builds a LIKE pattern that matches s literally anywhere in the column.
func containsPattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return "%" + s + "%"
}
