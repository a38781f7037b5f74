package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/library"
)

// CoversController serves stored book covers.
type CoversController struct {
	library *library.Service
}

// NewCoversController creates a new CoversController.
func NewCoversController(service *library.Service) *CoversController {
	return &CoversController{
		library: service,
	}
}

// GetCover serves the decoded cover image of a book.
// GET /api/books/library/front-cover/:id
func (cc *CoversController) GetCover(c *gin.Context) {
	payload, err := cc.library.GetCover(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "cover", "get cover")
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, payload.MIME, payload.Data)
}
