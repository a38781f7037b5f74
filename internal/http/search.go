package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/library"
)

// recentSearchCount is how many searches /last-search returns.
const recentSearchCount = 5

// SearchController serves catalog search and the search history.
type SearchController struct {
	reconciler *library.Reconciler
	library    *library.Service
}

func NewSearchController(reconciler *library.Reconciler, service *library.Service) *SearchController {
	return &SearchController{
		reconciler: reconciler,
		library:    service,
	}
}

// Search queries the external catalog and marks results already in the library.
// GET /api/books/search?q=
func (sc *SearchController) Search(c *gin.Context) {
	result, err := sc.reconciler.Reconcile(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err, "search", "search books")
		return
	}
	c.JSON(http.StatusOK, result)
}

// LastSearches returns the most recent search queries.
// GET /api/books/last-search
func (sc *SearchController) LastSearches(c *gin.Context) {
	searches, err := sc.library.RecentSearches(c.Request.Context(), recentSearchCount)
	if err != nil {
		respondServiceError(c, err, "search", "recent searches")
		return
	}
	c.JSON(http.StatusOK, gin.H{"searches": searches})
}
