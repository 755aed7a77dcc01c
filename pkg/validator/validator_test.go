package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type togglePayload struct {
	Enabled  *bool `json:"enabled" validate:"required_without=Archived"`
	Archived *bool `json:"archived" validate:"required_without=Enabled"`
}

type serverPayload struct {
	Port     int    `mapstructure:"port" validate:"min=1,max=65535"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

func TestValidateStructSuccess(t *testing.T) {
	on := true
	require.NoError(t, ValidateStruct(togglePayload{Enabled: &on}))
	require.NoError(t, ValidateStruct(serverPayload{Port: 8080, LogLevel: "info"}))
}

func TestValidateStructRequiresOneOfPointers(t *testing.T) {
	err := ValidateStruct(togglePayload{})
	require.Error(t, err)

	vErrs, ok := err.(ValidationErrors)
	require.True(t, ok, "expected ValidationErrors, got %T", err)
	require.Len(t, vErrs, 2)
	require.True(t, vErrs.HasTag("required_without"))
	require.Equal(t, "enabled", vErrs[0].Field)
}

func TestValidateStructUsesMapstructureNames(t *testing.T) {
	err := ValidateStruct(serverPayload{Port: 0, LogLevel: "loud"})
	require.Error(t, err)

	vErrs, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, vErrs, 2)
	require.Equal(t, "port", vErrs[0].Field)
	require.Equal(t, "log_level", vErrs[1].Field)
	require.Contains(t, vErrs.Error(), "port failed on min=1")
}

func TestValidateVar(t *testing.T) {
	require.NoError(t, ValidateVar("sqlite", "oneof=sqlite postgres mysql"))
	require.Error(t, ValidateVar("oracle", "oneof=sqlite postgres mysql"))
}

func TestRegisterValidation(t *testing.T) {
	err := RegisterValidation("settings_key", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "global"
	})
	require.NoError(t, err)

	type custom struct {
		Key string `validate:"settings_key"`
	}

	require.NoError(t, ValidateStruct(custom{Key: "global"}))
	require.Error(t, ValidateStruct(custom{Key: "other"}))
}
