package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/charlesng35/settingsd/internal/models"
)

// ErrEmptyPatch is returned when an update carries no columns.
var ErrEmptyPatch = errors.New("global settings: patch has no fields")

// SettingsStore reads and writes the global settings row through gorm.
type SettingsStore struct {
	db *gorm.DB
}

// NewSettingsStore wraps db in a SettingsStore.
func NewSettingsStore(db *gorm.DB) (*SettingsStore, error) {
	if db == nil {
		return nil, errors.New("global settings: db is nil")
	}
	return &SettingsStore{db: db}, nil
}

// FindOne returns the singleton row, or nil when it has not been created yet.
func (s *SettingsStore) FindOne(ctx context.Context) (*models.GlobalSettings, error) {
	return findGlobalSettings(ctx, s.db, models.GlobalSettingsKey)
}

// Update applies patch to the row identified by key and returns the stored result.
// A nil row with a nil error means no row matched the key.
func (s *SettingsStore) Update(ctx context.Context, key string, patch models.GlobalSettingsPatch) (*models.GlobalSettings, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.New("global settings: key is required")
	}

	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	result := s.db.WithContext(ctx).
		Model(&models.GlobalSettings{}).
		Where(&models.GlobalSettings{Key: key}).
		Updates(patch.Columns())
	if result.Error != nil {
		return nil, fmt.Errorf("global settings: update %q: %w", key, result.Error)
	}

	// Some drivers count only changed rows, so zero affected rows is not proof
	// that the key is missing.
	return findGlobalSettings(ctx, s.db, key)
}

// EnsureGlobalSettings creates the singleton row from defaults when it does not exist.
// An existing row is left untouched. It reports whether a row was created.
func EnsureGlobalSettings(ctx context.Context, db *gorm.DB, defaults models.GlobalSettings) (bool, error) {
	if db == nil {
		return false, errors.New("global settings: db is nil")
	}

	defaults.Key = models.GlobalSettingsKey

	var row models.GlobalSettings
	result := db.WithContext(ctx).
		Where(&models.GlobalSettings{Key: models.GlobalSettingsKey}).
		Attrs(defaults).
		FirstOrCreate(&row)
	if result.Error != nil {
		// Another instance created the row between our read and insert.
		if isUniqueConstraintError(result.Error) {
			return false, nil
		}
		return false, fmt.Errorf("global settings: ensure: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func findGlobalSettings(ctx context.Context, db *gorm.DB, key string) (*models.GlobalSettings, error) {
	var row models.GlobalSettings
	err := db.WithContext(ctx).Where(&models.GlobalSettings{Key: key}).Take(&row).Error
	if err == nil {
		return &row, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, fmt.Errorf("global settings: get %q: %w", key, err)
}
