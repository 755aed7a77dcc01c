package services

import (
	"context"
	"errors"
	"sync"

	"github.com/charlesng35/settingsd/internal/models"
)

// fakeSettingsStore is an in-memory SettingsStore that counts calls.
type fakeSettingsStore struct {
	mu        sync.Mutex
	row       *models.GlobalSettings
	findErr   error
	updateErr error
	finds     int
	updates   int
}

func newFakeSettingsStore(registrationsAllowed, cpiChangeAllowed bool) *fakeSettingsStore {
	return &fakeSettingsStore{row: &models.GlobalSettings{
		Key:                  models.GlobalSettingsKey,
		RegistrationsAllowed: registrationsAllowed,
		CPIChangeAllowed:     cpiChangeAllowed,
	}}
}

func (f *fakeSettingsStore) FindOne(_ context.Context) (*models.GlobalSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.row == nil {
		return nil, nil
	}
	cpy := *f.row
	return &cpy, nil
}

func (f *fakeSettingsStore) Update(_ context.Context, key string, patch models.GlobalSettingsPatch) (*models.GlobalSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if patch.IsEmpty() {
		return nil, errors.New("empty patch")
	}
	if f.row == nil || f.row.Key != key {
		return nil, nil
	}
	next := applyPatch(*f.row, patch)
	f.row = &next
	cpy := next
	return &cpy, nil
}

func (f *fakeSettingsStore) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updates
}

func applyPatch(row models.GlobalSettings, patch models.GlobalSettingsPatch) models.GlobalSettings {
	if patch.RegistrationsAllowed != nil {
		row.RegistrationsAllowed = *patch.RegistrationsAllowed
	}
	if patch.CPIChangeAllowed != nil {
		row.CPIChangeAllowed = *patch.CPIChangeAllowed
	}
	return row
}

func boolPtr(v bool) *bool { return &v }
