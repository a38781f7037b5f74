package books

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "books.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// seed inserts books with strictly increasing creation times.
func seed(t *testing.T, repo *Repository, books ...entities.Book) []entities.Book {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range books {
		books[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.CreateBook(context.Background(), &books[i]))
	}
	return books
}

func titles(summaries []entities.BookSummary) []string {
	out := make([]string, len(summaries))
	for i, s := range summaries {
		out[i] = s.Title
	}
	return out
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	book := &entities.Book{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Year:        intPtr(1965),
		CoverBase64: strPtr("data:image/png;base64,QUJD"),
		Rating:      intPtr(5),
	}
	require.NoError(t, repo.CreateBook(ctx, book))
	require.NotEmpty(t, book.ID)

	got, err := repo.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Frank Herbert", got.Author)
	assert.Equal(t, 1965, *got.Year)
	assert.Equal(t, "data:image/png;base64,QUJD", *got.CoverBase64)
	assert.Equal(t, 5, *got.Rating)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestRepository_GetBookByID_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	got, err := repo.GetBookByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_FindBooks_Filters(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	seed(t, repo,
		entities.Book{Title: "Dune", Author: "Frank Herbert", Review: "great"},
		entities.Book{Title: "Dune Messiah", Author: "Frank Herbert"},
		entities.Book{Title: "Emma", Author: "Jane Austen", Review: "fine"},
		entities.Book{Title: "100% Pure", Author: "Anon"},
	)

	t.Run("title is case-insensitive substring", func(t *testing.T) {
		got, err := repo.FindBooks(ctx, Query{Title: "DUNE"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Dune", "Dune Messiah"}, titles(got))
	})

	t.Run("author filter", func(t *testing.T) {
		got, err := repo.FindBooks(ctx, Query{Author: "austen"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Emma"}, titles(got))
	})

	t.Run("filters are combined", func(t *testing.T) {
		got, err := repo.FindBooks(ctx, Query{Title: "dune", ExcludeNoReview: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"Dune"}, titles(got))
	})

	t.Run("exclude books without review", func(t *testing.T) {
		got, err := repo.FindBooks(ctx, Query{ExcludeNoReview: true})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Dune", "Emma"}, titles(got))
	})

	t.Run("wildcards are matched literally", func(t *testing.T) {
		got, err := repo.FindBooks(ctx, Query{Title: "%"})
		require.NoError(t, err)
		assert.Equal(t, []string{"100% Pure"}, titles(got))

		got, err = repo.FindBooks(ctx, Query{Title: "_"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("no filters returns everything newest first", func(t *testing.T) {
		got, err := repo.FindBooks(ctx, Query{})
		require.NoError(t, err)
		assert.Equal(t, []string{"100% Pure", "Emma", "Dune Messiah", "Dune"}, titles(got))
	})
}

func TestRepository_FindBooks_UnicodeCaseInsensitive(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	seed(t, repo,
		entities.Book{Title: "Él Ángel", Author: "Ñúñez"},
		entities.Book{Title: "Cien años de soledad", Author: "Gabriel García Márquez"},
	)

	tests := []struct {
		name     string
		query    Query
		expected []string
	}{
		{"lowercase accented title", Query{Title: "él"}, []string{"Él Ángel"}},
		{"lowercase accented word", Query{Title: "ángel"}, []string{"Él Ángel"}},
		{"uppercase accented word", Query{Title: "ÁNGEL"}, []string{"Él Ángel"}},
		{"uppercase tilde", Query{Title: "AÑOS"}, []string{"Cien años de soledad"}},
		{"lowercase accented author", Query{Author: "ñúñez"}, []string{"Él Ángel"}},
		{"mixed case author", Query{Author: "GARCÍA"}, []string{"Cien años de soledad"}},
		{"accent is not stripped", Query{Title: "angel"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindBooks(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, titles(got))
		})
	}
}

func TestRepository_FindBooks_SortByRating(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	seed(t, repo,
		entities.Book{Title: "A", Rating: intPtr(3)},
		entities.Book{Title: "B", Rating: intPtr(5)},
		entities.Book{Title: "C"},
		entities.Book{Title: "D", Rating: intPtr(1)},
	)

	ratings := func(summaries []entities.BookSummary) []int {
		var out []int
		for _, s := range summaries {
			if s.Rating != nil {
				out = append(out, *s.Rating)
			}
		}
		return out
	}

	asc, err := repo.FindBooks(ctx, Query{Order: OrderRatingAsc})
	require.NoError(t, err)
	assert.Len(t, asc, 4)
	assert.IsNonDecreasing(t, ratings(asc))

	desc, err := repo.FindBooks(ctx, Query{Order: OrderRatingDesc})
	require.NoError(t, err)
	assert.Len(t, desc, 4)
	assert.IsNonIncreasing(t, ratings(desc))
}

func TestRepository_FindBooks_Pagination(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	var all []entities.Book
	for i := 0; i < 25; i++ {
		all = append(all, entities.Book{Title: "Book " + string(rune('A'+i))})
	}
	seed(t, repo, all...)

	full, err := repo.FindBooks(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, full, 25)

	page2, err := repo.FindBooks(ctx, Query{Offset: 10, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, titles(full[10:20]), titles(page2))

	page3, err := repo.FindBooks(ctx, Query{Offset: 20, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page3, 5)

	beyond, err := repo.FindBooks(ctx, Query{Offset: 100, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond)
	assert.NotNil(t, beyond)
}

func TestRepository_UpdateBookFields(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	book := &entities.Book{Title: "Dune"}
	require.NoError(t, repo.CreateBook(ctx, book))

	found, err := repo.UpdateBookFields(ctx, book.ID, map[string]any{"review": "loved it", "rating": 4})
	require.NoError(t, err)
	assert.True(t, found)

	got, err := repo.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "loved it", got.Review)
	assert.Equal(t, 4, *got.Rating)

	found, err = repo.UpdateBookFields(ctx, "missing", map[string]any{"review": "x"})
	require.NoError(t, err)
	assert.False(t, found)

	found, err = repo.UpdateBookFields(ctx, book.ID, nil)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestRepository_SetCover(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	book := &entities.Book{Title: "Dune"}
	require.NoError(t, repo.CreateBook(ctx, book))

	found, err := repo.SetCover(ctx, book.ID, "QUJD")
	require.NoError(t, err)
	assert.True(t, found)

	got, err := repo.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.True(t, got.HasCover())
}

func TestRepository_DeleteBook(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	book := &entities.Book{Title: "Dune"}
	require.NoError(t, repo.CreateBook(ctx, book))

	deleted, err := repo.DeleteBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	got, err := repo.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is not an error
	deleted, err = repo.DeleteBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestRepository_GetAllBooks(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	seed(t, repo,
		entities.Book{Title: "First", CoverBase64: strPtr("QUJD")},
		entities.Book{Title: "Second"},
	)

	got, err := repo.GetAllBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Second"}, titles(got))
}

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"dune", "%dune%"},
		{"100%", `%100\%%`},
		{"a_b", `%a\_b%`},
		{`back\slash`, `%back\\slash%`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, containsPattern(tt.input))
		})
	}
}
