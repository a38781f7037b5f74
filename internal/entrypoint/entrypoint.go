package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/covers"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/searches"
	http_controllers "github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/library"
	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work first (scheduler, task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting %s v%s", cfg.HTTP.ServiceName, version)
	startedAt := time.Now()

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	bookRepo := books.NewRepository(db.DB)
	searchRepo := searches.NewRepository(db.DB)

	catalogClient := catalog.NewClient(catalog.Config{
		BaseURL:       cfg.Catalog.BaseURL,
		CoversBaseURL: cfg.Catalog.CoversBaseURL,
		Timeout:       cfg.Catalog.Timeout,
	})
	coverFetcher := covers.NewFetcher(cfg.Covers.FetchTimeout, cfg.Covers.MaxBytes)

	libraryService := library.NewService(bookRepo, searchRepo)
	libraryService.SetCoverFetcher(coverFetcher)
	reconciler := library.NewReconciler(bookRepo, searchRepo, catalogClient, cfg.Catalog.ResultLimit)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var pruneScheduler *scheduler.SearchPruneScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewFetchCoverQueue(coverFetcher, bookRepo),
			tasks.NewPruneSearchesQueue(searchRepo),
		)
		libraryService.SetCoverQueue(taskClient)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		pruneScheduler = scheduler.NewSearchPruneScheduler(taskClient, cfg.SearchPrune.Schedule, cfg.SearchPrune.RetentionDays)
		if err := pruneScheduler.Start(taskCtx); err != nil {
			log.Printf("WARNING: search prune scheduler not started: %v", err)
		}
	} else {
		log.Printf("Task queue disabled: covers are downloaded inline and searches are never pruned")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Library:            libraryService,
		Reconciler:         reconciler,
		Database:           db,
		ServiceName:        cfg.HTTP.ServiceName,
		Version:            version,
		StartedAt:          startedAt,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		BodyLimitBytes:     cfg.HTTP.BodyLimitBytes,
		RequestTimeout:     cfg.HTTP.RequestTimeout,
	})

	onShutdown := func(ctx context.Context) {
		if pruneScheduler != nil {
			pruneScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
