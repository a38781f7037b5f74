package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(cfg.CORSAllowedOrigins))
	router.Use(BodyLimitMiddleware(cfg.BodyLimitBytes))
	router.Use(TimeoutMiddleware(cfg.RequestTimeout))

	health := NewHealthController(cfg.Database, cfg.ServiceName, cfg.Version, cfg.StartedAt)
	booksController := NewBooksController(cfg.Library)
	searchController := NewSearchController(cfg.Reconciler, cfg.Library)
	coversController := NewCoversController(cfg.Library)

	api := router.Group("/api")

	// Health endpoints
	api.GET("/healthz", health.Healthz)
	api.GET("/readyz", health.Readyz)

	books := api.Group("/books")

	// Catalog search
	books.GET("/search", searchController.Search)
	books.GET("/last-search", searchController.LastSearches)

	// Library endpoints
	books.POST("/my-library", booksController.CreateBook)
	books.GET("/my-library", booksController.ListBooks)
	books.GET("/my-library/:id", booksController.GetBook)
	books.PUT("/my-library/:id", booksController.UpdateBook)
	books.DELETE("/my-library/:id", booksController.DeleteBook)

	// Stored covers, addressed by library.CoverPath
	books.GET("/library/front-cover/:id", coversController.GetCover)

	return router
}
