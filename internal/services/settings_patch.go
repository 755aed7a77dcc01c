package services

import (
	"bytes"
	"encoding/json"

	"github.com/charlesng35/settingsd/internal/models"
)

const (
	fieldRegistrationsAllowed = "registrations_allowed"
	fieldCPIChangeAllowed     = "cpi_change_allowed"
)

// ParseSettingsPatch turns a raw JSON request body into a typed patch.
// Only boolean values are taken; other types and unknown keys are ignored.
// Non-object JSON yields an empty patch.
func ParseSettingsPatch(body []byte) (models.GlobalSettingsPatch, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return models.GlobalSettingsPatch{}, ErrNoSettingsBody
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.GlobalSettingsPatch{}, ErrInvalidSettingsPayload.WithInternal(err)
	}
	if payload == nil {
		return models.GlobalSettingsPatch{}, ErrNoSettingsBody
	}

	fields, ok := payload.(map[string]any)
	if !ok {
		return models.GlobalSettingsPatch{}, nil
	}

	var patch models.GlobalSettingsPatch
	if v, ok := fields[fieldRegistrationsAllowed].(bool); ok {
		patch.RegistrationsAllowed = &v
	}
	if v, ok := fields[fieldCPIChangeAllowed].(bool); ok {
		patch.CPIChangeAllowed = &v
	}
	return patch, nil
}
