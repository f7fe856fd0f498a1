package repository

import (
	"testing"

	"studyglobe/internal/cache"
	"studyglobe/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB returns a migrated in-memory sqlite database and a clean cache.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cache.SetClient(nil)
	cache.ResetLocal()
	t.Cleanup(cache.ResetLocal)

	db, err := database.Open(sqlite.Open(":memory:"), true)
	require.NoError(t, err)
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	cache.SetClient(nil)
	cache.ResetLocal()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}
