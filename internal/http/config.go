package http

import (
	"time"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/library"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Library    *library.Service
	Reconciler *library.Reconciler
	Database   *database.Database

	// Application info
	ServiceName string
	Version     string
	StartedAt   time.Time

	// Request handling
	CORSAllowedOrigins []string
	BodyLimitBytes     int64
	RequestTimeout     time.Duration
}
