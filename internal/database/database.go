package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/entities"
)

// ErrNotConnected is returned by Ping once the handle has been closed.
var ErrNotConnected = errors.New("database is not connected")

// Connection states reported by State.
const (
	StateConnected    = "connected"
	StateDisconnected = "disconnected"
)

// Database is the process-wide store handle. It is opened once at start-up and
// passed to every repository that needs it.
type Database struct {
	DB *gorm.DB

	closed atomic.Bool
}

func NewDatabase(dbPath string) (*Database, error) {
	return open(dbPath, logger.Default.LogMode(logger.Warn))
}

// NewQuietDatabase opens the database with gorm logging disabled. Used by tests.
func NewQuietDatabase(dbPath string) (*Database, error) {
	return open(dbPath, logger.Default.LogMode(logger.Silent))
}

func open(dbPath string, gormLogger logger.Interface) (*Database, error) {
	dsn := dbPath + "?_busy_timeout=5000&_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.SearchQuery{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := backfillFoldColumns(db); err != nil {
		return nil, fmt.Errorf("failed to backfill search columns: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

// backfillFoldColumns fills title_fold and author_fold for rows written before
// those columns existed.
func backfillFoldColumns(db *gorm.DB) error {
	var stale []entities.Book
	err := db.Select("id", "title", "author").
		Where("(title_fold = '' OR title_fold IS NULL) AND title <> ''").
		Or("(author_fold = '' OR author_fold IS NULL) AND author <> ''").
		Find(&stale).Error
	if err != nil {
		return err
	}

	for i := range stale {
		book := &stale[i]
		book.FoldSearchColumns()
		err := db.Model(&entities.Book{}).
			Where("id = ?", book.ID).
			UpdateColumns(map[string]any{"title_fold": book.TitleFold, "author_fold": book.AuthorFold}).Error
		if err != nil {
			return err
		}
	}
	if len(stale) > 0 {
		log.Printf("Backfilled search columns for %d books", len(stale))
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	d.closed.Store(true)
	return sqlDB.Close()
}

// Ping checks that the underlying connection pool can reach the database.
func (d *Database) Ping(ctx context.Context) error {
	if d.closed.Load() {
		return ErrNotConnected
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// State returns a short connection state for health reporting.
func (d *Database) State() string {
	if d == nil || d.closed.Load() {
		return StateDisconnected
	}
	return StateConnected
}
