package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/charlesng35/settingsd/internal/models"
	apperrors "github.com/charlesng35/settingsd/pkg/errors"
	"github.com/charlesng35/settingsd/pkg/logger"
	"github.com/charlesng35/settingsd/pkg/metrics"
	appValidator "github.com/charlesng35/settingsd/pkg/validator"
)

// Errors surfaced by SettingsService. They render directly through response.Error.
var (
	ErrSettingsNotFound       = apperrors.New("SETTINGS_NOT_FOUND", "Settings entry not found", http.StatusInternalServerError)
	ErrSettingsReadFailed     = apperrors.New("SETTINGS_READ_FAILED", "Could not get settings", http.StatusInternalServerError)
	ErrNoSettingsBody         = apperrors.New("NO_BODY", "No body found", http.StatusInternalServerError)
	ErrInvalidSettingsPayload = apperrors.ErrBadRequest.WithMessage("invalid JSON payload")
	ErrNoSettingsToChange     = apperrors.New("NO_SETTINGS_TO_CHANGE", "No settings to change", http.StatusBadRequest)
	ErrSettingsUpdateFailed   = apperrors.New("SETTINGS_UPDATE_FAILED", "Could not change settings", http.StatusInternalServerError)
)

// SettingsStore is the persistence contract for the global settings row.
type SettingsStore interface {
	// FindOne returns the singleton row or nil when it does not exist.
	FindOne(ctx context.Context) (*models.GlobalSettings, error)
	// Update applies patch to the row with the given key, returning nil when no row matched.
	Update(ctx context.Context, key string, patch models.GlobalSettingsPatch) (*models.GlobalSettings, error)
}

// SettingsView is the public projection of the global settings.
type SettingsView struct {
	RegistrationsAllowed bool `json:"registrations_allowed"`
	CPIChangeAllowed     bool `json:"cpi_change_allowed"`
}

// SettingsService reads and partially updates the global settings.
// It keeps no state between calls; every call goes to the store.
type SettingsService struct {
	store SettingsStore
	audit *AuditService
	log   *zap.Logger
}

// SettingsOption customises SettingsService behaviour.
type SettingsOption func(*SettingsService)

// WithSettingsAudit records successful changes in the audit log.
func WithSettingsAudit(audit *AuditService) SettingsOption {
	return func(svc *SettingsService) {
		if audit != nil {
			svc.audit = audit
		}
	}
}

// WithSettingsLogger overrides the module logger.
func WithSettingsLogger(log *zap.Logger) SettingsOption {
	return func(svc *SettingsService) {
		if log != nil {
			svc.log = log
		}
	}
}

// NewSettingsService constructs a service once dependencies are supplied.
func NewSettingsService(store SettingsStore, opts ...SettingsOption) (*SettingsService, error) {
	if store == nil {
		return nil, errors.New("settings service: store is required")
	}
	svc := &SettingsService{
		store: store,
		log:   logger.WithModule("settings"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// GetSettings returns the two public flags exactly as stored.
func (s *SettingsService) GetSettings(ctx context.Context) (SettingsView, error) {
	ctx = ensureContext(ctx)

	row, err := s.store.FindOne(ctx)
	if err != nil {
		metrics.SettingsReads.WithLabelValues("error").Inc()
		s.log.Error("settings lookup failed", zap.Error(err))
		return SettingsView{}, ErrSettingsReadFailed.WithInternal(err)
	}
	if row == nil {
		metrics.SettingsReads.WithLabelValues("not_found").Inc()
		s.log.Warn("settings entry not found; run `settingsd bootstrap` to create it")
		return SettingsView{}, ErrSettingsNotFound
	}

	metrics.SettingsReads.WithLabelValues("success").Inc()
	return SettingsView{
		RegistrationsAllowed: row.RegistrationsAllowed,
		CPIChangeAllowed:     row.CPIChangeAllowed,
	}, nil
}

// ChangeSettings writes the fields present in patch to the singleton row.
// It issues exactly one store write and does not return the new state.
func (s *SettingsService) ChangeSettings(ctx context.Context, actor Actor, patch models.GlobalSettingsPatch) error {
	ctx = ensureContext(ctx)

	if err := appValidator.ValidateStruct(patch); err != nil {
		metrics.SettingsUpdates.WithLabelValues("rejected").Inc()
		var vErrs appValidator.ValidationErrors
		if errors.As(err, &vErrs) && vErrs.HasTag("required_without") {
			return ErrNoSettingsToChange
		}
		return apperrors.NewBadRequest(err.Error())
	}

	row, err := s.store.Update(ctx, models.GlobalSettingsKey, patch)
	if err != nil || row == nil {
		metrics.SettingsUpdates.WithLabelValues("error").Inc()
		if err == nil {
			err = fmt.Errorf("no settings row with key %q", models.GlobalSettingsKey)
		}
		s.log.Error("settings update failed", zap.Error(err), zap.String("user_id", actor.UserID))
		return ErrSettingsUpdateFailed.WithInternal(err)
	}

	metrics.SettingsUpdates.WithLabelValues("success").Inc()
	changes := patch.Columns()
	s.log.Info("settings updated", zap.String("user_id", actor.UserID), zap.Any("changes", changes))

	if s.audit != nil {
		if err := s.audit.Log(ctx, AuditEntry{
			UserID:    actor.UserID,
			Action:    "settings.updated",
			Resource:  "settings:" + models.GlobalSettingsKey,
			Result:    "success",
			IPAddress: actor.IPAddress,
			UserAgent: actor.UserAgent,
			Metadata:  changes,
		}); err != nil {
			s.log.Warn("audit log write failed", zap.Error(err))
		}
	}

	return nil
}
