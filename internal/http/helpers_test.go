package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/library/internal/library"
)

func TestParseIntQuery(t *testing.T) {
	tests := []struct {
		query    string
		expected int
		ok       bool
	}{
		{"", 0, true},
		{"page=3", 3, true},
		{"page=-2", -2, true},
		{"page=abc", 0, false},
		{"page=2.5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

			v, ok := parseIntQuery(c, "page")

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, v)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, w.Body.String(), "invalid page")
			}
		})
	}
}

func TestParseBoolQuery(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
		ok       bool
	}{
		{"", false, true},
		{"true", true, true},
		{"1", true, true},
		{"false", false, true},
		{"0", false, true},
		{"yes", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/?flag="+tt.value, nil)

			v, ok := parseBoolQuery(c, "flag")

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("wrapped: %w", library.ErrNotFound), http.StatusNotFound},
		{"validation", &library.ValidationError{Field: "rating", Message: "bad"}, http.StatusBadRequest},
		{"timeout", fmt.Errorf("list: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"storage", errors.New("disk I/O error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, tt.err, "book", "test")

			assert.Equal(t, tt.status, w.Code)
			assert.NotContains(t, w.Body.String(), "disk I/O")
		})
	}
}

func TestTimeoutMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(TimeoutMiddleware(20 * time.Millisecond))
	router.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
		respondServiceError(c, c.Request.Context().Err(), "book", "slow")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/slow", nil))

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
