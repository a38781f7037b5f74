package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/library"
)

// BooksController serves the personal library.
type BooksController struct {
	library *library.Service
}

func NewBooksController(service *library.Service) *BooksController {
	return &BooksController{
		library: service,
	}
}

// ListBooks returns one page of the library without covers.
// GET /api/books/my-library?q=&author=&excludeNoReview=&sort=&page=&pageSize=
func (bc *BooksController) ListBooks(c *gin.Context) {
	opts, ok := parseListOptions(c)
	if !ok {
		return
	}

	books, err := bc.library.ListBooks(c.Request.Context(), opts)
	if err != nil {
		respondServiceError(c, err, "book", "list books")
		return
	}
	c.JSON(http.StatusOK, books)
}

func parseListOptions(c *gin.Context) (library.ListOptions, bool) {
	page, ok := parseIntQuery(c, "page")
	if !ok {
		return library.ListOptions{}, false
	}
	pageSize, ok := parseIntQuery(c, "pageSize")
	if !ok {
		return library.ListOptions{}, false
	}
	excludeNoReview, ok := parseBoolQuery(c, "excludeNoReview")
	if !ok {
		return library.ListOptions{}, false
	}

	return library.ListOptions{
		Q:               c.Query("q"),
		Author:          c.Query("author"),
		ExcludeNoReview: excludeNoReview,
		Sort:            c.Query("sort"),
		Page:            page,
		PageSize:        pageSize,
	}, true
}

// CreateBook adds a book to the library.
// POST /api/books/my-library
func (bc *BooksController) CreateBook(c *gin.Context) {
	var input library.NewBook
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	book, err := bc.library.CreateBook(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "book", "create book")
		return
	}
	c.JSON(http.StatusCreated, book)
}

// GetBook returns a book including its cover.
// GET /api/books/my-library/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	book, err := bc.library.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "book", "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// UpdateBook changes the review and/or rating of a book.
// PUT /api/books/my-library/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	var update library.BookUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBindError(c, err)
		return
	}

	book, err := bc.library.UpdateBook(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondServiceError(c, err, "book", "update book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// DeleteBook removes a book. Unknown IDs succeed.
// DELETE /api/books/my-library/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	if err := bc.library.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "book", "delete book")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
