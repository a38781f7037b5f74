package http

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/database"
)

// readinessTimeout bounds the database ping of /api/readyz.
const readinessTimeout = 2500 * time.Millisecond

type MemoryStats struct {
	AllocBytes     uint64 `json:"alloc_bytes"`
	HeapAllocBytes uint64 `json:"heap_alloc_bytes"`
	HeapInuseBytes uint64 `json:"heap_inuse_bytes"`
	SysBytes       uint64 `json:"sys_bytes"`
	NumGC          uint32 `json:"num_gc"`
}

type HealthResponse struct {
	Status     string      `json:"status"`
	Service    string      `json:"service"`
	Version    string      `json:"version,omitempty"`
	Time       string      `json:"time"`
	UptimeMs   int64       `json:"uptime_ms"`
	Memory     MemoryStats `json:"memory"`
	Goroutines int         `json:"goroutines"`
	Database   string      `json:"database"`
}

type ReadinessResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type HealthController struct {
	db        *database.Database
	service   string
	version   string
	startedAt time.Time
}

func NewHealthController(db *database.Database, service, version string, startedAt time.Time) *HealthController {
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	return &HealthController{
		db:        db,
		service:   service,
		version:   version,
		startedAt: startedAt,
	}
}

// Healthz reports liveness. It always answers 200.
// GET /api/healthz
func (h *HealthController) Healthz(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, HealthResponse{
		Status:   "ok",
		Service:  h.service,
		Version:  h.version,
		Time:     time.Now().UTC().Format(time.RFC3339),
		UptimeMs: time.Since(h.startedAt).Milliseconds(),
		Memory: MemoryStats{
			AllocBytes:     m.Alloc,
			HeapAllocBytes: m.HeapAlloc,
			HeapInuseBytes: m.HeapInuse,
			SysBytes:       m.Sys,
			NumGC:          m.NumGC,
		},
		Goroutines: runtime.NumGoroutine(),
		Database:   h.db.State(),
	})
}

// Readyz reports whether the database answers a ping.
// GET /api/readyz
func (h *HealthController) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, ReadinessResponse{Status: "degraded", Error: database.ErrNotConnected.Error()})
		return
	}
	if err := h.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, ReadinessResponse{Status: "degraded", Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, ReadinessResponse{Status: "ready"})
}
