package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/settingsd/internal/models"
)

func TestOpenSQLiteMemory(t *testing.T) {
	db := openTestDB(t, "")

	require.NoError(t, db.Exec("SELECT 1").Error)
	require.NoError(t, Ping(context.Background(), db))
}

func TestOpenSQLiteFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.sqlite")
	db := openTestDB(t, path)

	require.NoError(t, AutoMigrate(db))
	require.FileExists(t, path)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported database driver")
}

func TestAutoMigrateAndSeedCreatesSingleton(t *testing.T) {
	db := openTestDB(t, "")

	require.NoError(t, AutoMigrateAndSeed(context.Background(), db, models.GlobalSettings{RegistrationsAllowed: true}))

	var count int64
	require.NoError(t, db.Model(&models.GlobalSettings{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	// A second run must not add rows or reset values.
	require.NoError(t, AutoMigrateAndSeed(context.Background(), db, models.GlobalSettings{RegistrationsAllowed: false}))
	require.NoError(t, db.Model(&models.GlobalSettings{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	var row models.GlobalSettings
	require.NoError(t, db.First(&row).Error)
	require.True(t, row.RegistrationsAllowed)
}

func TestAutoMigrateAndSeedRequiresDB(t *testing.T) {
	require.Error(t, AutoMigrateAndSeed(context.Background(), nil, models.GlobalSettings{}))
}

func openTestDB(t *testing.T, path string) *gorm.DB {
	t.Helper()

	cfg := Config{Driver: "sqlite", Path: path}
	if path == "" {
		cfg.DSN = "file:" + t.Name() + "?mode=memory&cache=shared"
	}

	db, err := Open(cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
