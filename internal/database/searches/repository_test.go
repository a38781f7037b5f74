package searches

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "searches.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.SearchQuery{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db), db
}

func TestRepository_AppendAndRecent(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	for _, q := range []string{"dune", "emma", "ulysses", "hamlet", "iliad", "odyssey"} {
		require.NoError(t, repo.Append(ctx, q))
	}

	recent, err := repo.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"odyssey", "iliad", "hamlet", "ulysses", "emma"}, recent)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
}

func TestRepository_Recent_Empty(t *testing.T) {
	repo, _ := setupTestDB(t)

	recent, err := repo.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, recent)

	recent, err = repo.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestRepository_DeleteOlderThan(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	old := &entities.SearchQuery{Text: "old", CreatedAt: time.Now().Add(-100 * 24 * time.Hour)}
	require.NoError(t, db.Create(old).Error)
	require.NoError(t, repo.Append(ctx, "fresh"))

	deleted, err := repo.DeleteOlderThan(ctx, time.Now().Add(-90*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, recent)
}
