package library

import (
	"context"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/entities"
)

// BookLister loads every stored book without its cover.
type BookLister interface {
	GetAllBooks(ctx context.Context) ([]entities.BookSummary, error)
}

// BookStore is the persistence surface used by Service.
type BookStore interface {
	BookLister
	CreateBook(ctx context.Context, book *entities.Book) error
	GetBookByID(ctx context.Context, id string) (*entities.Book, error)
	FindBooks(ctx context.Context, q books.Query) ([]entities.BookSummary, error)
	UpdateBookFields(ctx context.Context, id string, fields map[string]any) (bool, error)
	DeleteBook(ctx context.Context, id string) (int64, error)
}

// SearchLog records submitted search queries.
type SearchLog interface {
	Append(ctx context.Context, text string) error
	Recent(ctx context.Context, n int) ([]string, error)
}

// Catalog searches an external book catalog.
type Catalog interface {
	Search(ctx context.Context, text string, limit int) catalog.SearchOutcome
	CoverURL(coverID int64) string
}

// CoverQueue schedules a background download of a book cover.
type CoverQueue interface {
	EnqueueCoverFetch(ctx context.Context, bookID, url string) error
}

// CoverFetcher downloads a cover and returns it as a data URI.
type CoverFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
