package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(3002), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, "library-api", cfg.HTTP.ServiceName)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, int64(10<<20), cfg.HTTP.BodyLimitBytes)
	assert.Equal(t, []string{DefaultCORSOrigin}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, 5, cfg.Global.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)

	assert.Equal(t, "https://openlibrary.org", cfg.Catalog.BaseURL)
	assert.Equal(t, "https://covers.openlibrary.org", cfg.Catalog.CoversBaseURL)
	assert.Equal(t, 8*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 10, cfg.Catalog.ResultLimit)

	assert.Equal(t, 15*time.Second, cfg.Covers.FetchTimeout)
	assert.Equal(t, int64(5<<20), cfg.Covers.MaxBytes)

	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.Tasks.CleanupInterval)

	assert.Equal(t, 90, cfg.SearchPrune.RetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.SearchPrune.Schedule)
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/data/books.db")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("TASKS_ENABLED", "false")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "/data/books.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSAllowedOrigins)
	assert.False(t, cfg.Tasks.Enabled)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList(" , "))
	assert.Equal(t, []string{"a", "b"}, splitList("a,b"))
}
