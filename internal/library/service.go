package library

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/mrlokans/library/internal/covers"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/entities"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 50

	SortRatingAsc  = "ratingAsc"
	SortRatingDesc = "ratingDesc"
)

// ListOptions are the listing parameters accepted from clients.
// Zero values mean "not provided".
type ListOptions struct {
	Q               string
	Author          string
	ExcludeNoReview bool
	Sort            string
	Page            int
	PageSize        int
}

// Query clamps the options and translates them into a store query.
func (o ListOptions) Query() books.Query {
	page := o.Page
	if page < 1 {
		page = DefaultPage
	}
	pageSize := o.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	order := books.OrderNewest
	switch o.Sort {
	case SortRatingAsc:
		order = books.OrderRatingAsc
	case SortRatingDesc:
		order = books.OrderRatingDesc
	}

	return books.Query{
		Title:           o.Q,
		Author:          o.Author,
		ExcludeNoReview: o.ExcludeNoReview,
		Order:           order,
		Offset:          max(0, (page-1)*pageSize),
		Limit:           pageSize,
	}
}

// NewBook is the input for creating a library entry. When CoverBase64 is empty
// and CoverURL is set, the cover is downloaded from CoverURL.
type NewBook struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Year        *int   `json:"year"`
	CoverBase64 string `json:"coverBase64"`
	CoverURL    string `json:"coverUrl"`
	Review      string `json:"review"`
	Rating      *int   `json:"rating"`
}

// BookUpdate changes the review and rating of a book. Nil fields are left untouched.
type BookUpdate struct {
	Review *string `json:"review"`
	Rating *int    `json:"rating"`
}

// Service implements the library operations on top of a BookStore.
type Service struct {
	store    BookStore
	searches SearchLog

	coverQueue   CoverQueue
	coverFetcher CoverFetcher
}

// NewService creates a library service.
func NewService(store BookStore, searches SearchLog) *Service {
	return &Service{
		store:    store,
		searches: searches,
	}
}

// SetCoverQueue makes CreateBook download covers in the background (optional).
func (s *Service) SetCoverQueue(queue CoverQueue) {
	s.coverQueue = queue
}

// SetCoverFetcher makes CreateBook download covers inline when no queue is set (optional).
func (s *Service) SetCoverFetcher(fetcher CoverFetcher) {
	s.coverFetcher = fetcher
}

// ListBooks returns one page of library entries without cover payloads.
func (s *Service) ListBooks(ctx context.Context, opts ListOptions) ([]entities.BookSummary, error) {
	result, err := s.store.FindBooks(ctx, opts.Query())
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return result, nil
}

// CreateBook validates and stores a new book.
func (s *Service) CreateBook(ctx context.Context, input NewBook) (*entities.Book, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, invalid("title", "is required")
	}
	if err := validateReview(input.Review); err != nil {
		return nil, err
	}
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}

	book := &entities.Book{
		Title:  title,
		Author: strings.TrimSpace(input.Author),
		Year:   input.Year,
		Review: input.Review,
		Rating: input.Rating,
	}

	coverURL := strings.TrimSpace(input.CoverURL)
	switch {
	case input.CoverBase64 != "":
		cover := input.CoverBase64
		book.CoverBase64 = &cover
	case coverURL != "" && s.coverQueue == nil && s.coverFetcher != nil:
		if cover, err := s.coverFetcher.Fetch(ctx, coverURL); err != nil {
			log.Printf("[LIBRARY] cover download from %s failed: %v", coverURL, err)
		} else {
			book.CoverBase64 = &cover
		}
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	if input.CoverBase64 == "" && coverURL != "" && s.coverQueue != nil {
		if err := s.coverQueue.EnqueueCoverFetch(ctx, book.ID, coverURL); err != nil {
			log.Printf("[LIBRARY] failed to enqueue cover download for book %s: %v", book.ID, err)
		}
	}

	return book, nil
}

// GetBook returns a book with its cover.
func (s *Service) GetBook(ctx context.Context, id string) (*entities.Book, error) {
	book, err := s.store.GetBookByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if book == nil {
		return nil, ErrNotFound
	}
	return book, nil
}

// UpdateBook sets the provided review and rating and returns the updated book.
// Nothing is written when validation fails.
func (s *Service) UpdateBook(ctx context.Context, id string, update BookUpdate) (*entities.Book, error) {
	fields := make(map[string]any, 2)
	if update.Review != nil {
		if err := validateReview(*update.Review); err != nil {
			return nil, err
		}
		fields["review"] = *update.Review
	}
	if update.Rating != nil {
		if err := validateRating(update.Rating); err != nil {
			return nil, err
		}
		fields["rating"] = *update.Rating
	}

	found, err := s.store.UpdateBookFields(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return s.GetBook(ctx, id)
}

// DeleteBook removes a book. Removing a book that does not exist succeeds.
func (s *Service) DeleteBook(ctx context.Context, id string) error {
	if _, err := s.store.DeleteBook(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

// GetCover decodes the stored cover of a book.
func (s *Service) GetCover(ctx context.Context, id string) (*covers.Payload, error) {
	book, err := s.store.GetBookByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if book == nil || !book.HasCover() {
		return nil, ErrNotFound
	}
	return covers.Decode(*book.CoverBase64)
}

// RecentSearches returns the n most recent search queries, newest first.
func (s *Service) RecentSearches(ctx context.Context, n int) ([]string, error) {
	recent, err := s.searches.Recent(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	return recent, nil
}

func validateReview(review string) error {
	if utf8.RuneCountInString(review) > entities.MaxReviewLength {
		return invalid("review", "must be at most %d characters", entities.MaxReviewLength)
	}
	return nil
}

func validateRating(rating *int) error {
	if rating != nil && (*rating < entities.MinRating || *rating > entities.MaxRating) {
		return invalid("rating", "must be between %d and %d", entities.MinRating, entities.MaxRating)
	}
	return nil
}
