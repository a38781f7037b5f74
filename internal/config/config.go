package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Catalog
		Covers
		Tasks
		SearchPrune
	}

	HTTP struct {
		Port               int32
		Host               string
		ServiceName        string
		RequestTimeout     time.Duration
		BodyLimitBytes     int64
		CORSAllowedOrigins []string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Catalog struct {
		BaseURL       string
		CoversBaseURL string
		Timeout       time.Duration
		ResultLimit   int // Records requested per search (default: 10)
	}
	Covers struct {
		FetchTimeout time.Duration
		MaxBytes     int64
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	SearchPrune struct {
		RetentionDays int    // Days to keep logged searches (default: 90)
		Schedule      string // Cron format: "0 3 * * *" = daily at 03:00, empty disables
	}
)

// splitList parses a comma separated env value, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3002)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("service_name", "library-api")
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("body_limit_bytes", 10<<20) // 10 MB, covers travel inline as base64
	v.SetDefault("cors_allowed_origins", DefaultCORSOrigin)

	// External catalog defaults
	v.SetDefault("catalog_base_url", "https://openlibrary.org")
	v.SetDefault("catalog_covers_base_url", "https://covers.openlibrary.org")
	v.SetDefault("catalog_timeout", "8s")
	v.SetDefault("catalog_result_limit", 10)

	// Cover download defaults
	v.SetDefault("cover_fetch_timeout", "15s")
	v.SetDefault("cover_max_bytes", 5<<20)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Search log retention
	v.SetDefault("search_retention_days", 90)
	v.SetDefault("search_prune_schedule", "0 3 * * *")

	return &Config{
		HTTP: HTTP{
			Port:               v.GetInt32("PORT"),
			Host:               v.GetString("HOST"),
			ServiceName:        v.GetString("SERVICE_NAME"),
			RequestTimeout:     v.GetDuration("REQUEST_TIMEOUT"),
			BodyLimitBytes:     v.GetInt64("BODY_LIMIT_BYTES"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Catalog: Catalog{
			BaseURL:       v.GetString("CATALOG_BASE_URL"),
			CoversBaseURL: v.GetString("CATALOG_COVERS_BASE_URL"),
			Timeout:       v.GetDuration("CATALOG_TIMEOUT"),
			ResultLimit:   v.GetInt("CATALOG_RESULT_LIMIT"),
		},
		Covers: Covers{
			FetchTimeout: v.GetDuration("COVER_FETCH_TIMEOUT"),
			MaxBytes:     v.GetInt64("COVER_MAX_BYTES"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		SearchPrune: SearchPrune{
			RetentionDays: v.GetInt("SEARCH_RETENTION_DAYS"),
			Schedule:      v.GetString("SEARCH_PRUNE_SCHEDULE"),
		},
	}
}
