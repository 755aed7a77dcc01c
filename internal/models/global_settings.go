package models

import "time"

// GlobalSettingsKey addresses the singleton settings row.
const GlobalSettingsKey = "global"

// GlobalSettings holds installation-wide feature switches. Exactly one row exists,
// keyed by GlobalSettingsKey.
type GlobalSettings struct {
	Key                  string    `gorm:"primaryKey;size:64" json:"-"`
	RegistrationsAllowed bool      `gorm:"not null;default:false" json:"registrations_allowed"`
	CPIChangeAllowed     bool      `gorm:"column:cpi_change_allowed;not null;default:false" json:"cpi_change_allowed"`
	CreatedAt            time.Time `json:"-"`
	UpdatedAt            time.Time `json:"-"`
}

// TableName pins the table name so it does not drift with struct renames.
func (GlobalSettings) TableName() string {
	return "global_settings"
}

// GlobalSettingsPatch is a partial update of GlobalSettings. Nil fields are left untouched.
type GlobalSettingsPatch struct {
	RegistrationsAllowed *bool `json:"registrations_allowed,omitempty" validate:"required_without=CPIChangeAllowed"`
	CPIChangeAllowed     *bool `json:"cpi_change_allowed,omitempty" validate:"required_without=RegistrationsAllowed"`
}

// IsEmpty reports whether the patch changes nothing.
func (p GlobalSettingsPatch) IsEmpty() bool {
	return p.RegistrationsAllowed == nil && p.CPIChangeAllowed == nil
}

// Columns maps the set fields to their column names.
func (p GlobalSettingsPatch) Columns() map[string]any {
	columns := make(map[string]any, 2)
	if p.RegistrationsAllowed != nil {
		columns["registrations_allowed"] = *p.RegistrationsAllowed
	}
	if p.CPIChangeAllowed != nil {
		columns["cpi_change_allowed"] = *p.CPIChangeAllowed
	}
	return columns
}
