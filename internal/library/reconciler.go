package library

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/entities"
)

const (
	DefaultSearchLimit = 10

	// CoverPathPrefix is the API path under which stored covers are served.
	CoverPathPrefix = "/api/books/library/front-cover/"
)

// SearchResultItem is a catalog result annotated with the local library state.
// Cover is the local cover path when the book is owned, the catalog cover URL
// when the catalog has one, and nil otherwise.
type SearchResultItem struct {
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Year   *int    `json:"year"`
	Cover  *string `json:"cover"`
}

type SearchResult struct {
	Items []SearchResultItem `json:"items"`
}

// Reconciler merges catalog search results with the local library.
type Reconciler struct {
	books   BookLister
	log     SearchLog
	catalog Catalog
	limit   int
}

// NewReconciler creates a Reconciler. A non-positive limit uses DefaultSearchLimit.
func NewReconciler(books BookLister, log SearchLog, catalog Catalog, limit int) *Reconciler {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return &Reconciler{
		books:   books,
		log:     log,
		catalog: catalog,
		limit:   limit,
	}
}

// Reconcile searches the catalog for text and marks the results already in
// the library. Blank text yields an empty result without touching the search
// log or the catalog. Catalog failures yield an empty result; storage failures
// are returned.
func (r *Reconciler) Reconcile(ctx context.Context, text string) (SearchResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return SearchResult{Items: []SearchResultItem{}}, nil
	}

	if err := r.log.Append(ctx, text); err != nil {
		return SearchResult{}, fmt.Errorf("log search: %w", err)
	}

	var (
		outcome catalog.SearchOutcome
		local   []entities.BookSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		outcome = r.catalog.Search(gctx, text, r.limit)
		return nil
	})
	g.Go(func() error {
		var err error
		local, err = r.books.GetAllBooks(gctx)
		if err != nil {
			return fmt.Errorf("load library: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return SearchResult{}, err
	}

	index := buildIndex(local)

	records := outcome.Records
	if len(records) > r.limit {
		records = records[:r.limit]
	}

	items := make([]SearchResultItem, 0, len(records))
	for _, rec := range records {
		item := SearchResultItem{
			Title:  rec.Title,
			Author: rec.Author(),
			Year:   rec.FirstPublishYear,
		}
		if id, ok := index[NormalizeKey(item.Title, item.Author)]; ok {
			item.Cover = stringPtr(CoverPath(id))
		} else if rec.CoverID != nil {
			item.Cover = stringPtr(r.catalog.CoverURL(*rec.CoverID))
		}
		items = append(items, item)
	}

	return SearchResult{Items: items}, nil
}

// CoverPath returns the API path serving the stored cover of a book.
func CoverPath(bookID string) string {
	return CoverPathPrefix + bookID
}

// buildIndex maps normalized keys to book IDs. The first book stored under a
// key wins.
func buildIndex(local []entities.BookSummary) map[string]string {
	index := make(map[string]string, len(local))
	for _, b := range local {
		key := NormalizeKey(b.Title, b.Author)
		if _, exists := index[key]; !exists {
			index[key] = b.ID
		}
	}
	return index
}

func stringPtr(s string) *string {
	return &s
}
