package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/library"
)

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, op string) {
	log.Printf("Internal error (%s): %v", op, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondServiceError maps library errors onto HTTP responses.
func respondServiceError(c *gin.Context, err error, resource, op string) {
	var vErr *library.ValidationError
	switch {
	case errors.Is(err, library.ErrNotFound):
		respondNotFound(c, resource)
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: vErr.Error(), Field: vErr.Field})
	case errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusGatewayTimeout, "request timed out")
	default:
		respondInternalError(c, err, op)
	}
}

// respondBindError answers a request whose JSON body could not be read.
func respondBindError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		respondError(c, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	var validationErr *library.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Error(), Field: validationErr.Field})
		return
	}
	respondBadRequest(c, "invalid request body")
}

// parseIntQuery reads an optional integer query parameter.
// Responds with 400 and returns false when the value is not an integer.
func parseIntQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

// parseBoolQuery reads an optional boolean query parameter (true/false/1/0).
func parseBoolQuery(c *gin.Context, name string) (bool, bool) {
	switch c.Query(name) {
	case "", "false", "0":
		return false, true
	case "true", "1":
		return true, true
	default:
		respondBadRequest(c, "invalid "+name)
		return false, false
	}
}
