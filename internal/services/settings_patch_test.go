package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSettingsPatchTakesBooleans(t *testing.T) {
	patch, err := ParseSettingsPatch([]byte(`{"registrations_allowed": false, "cpi_change_allowed": true}`))
	require.NoError(t, err)
	require.NotNil(t, patch.RegistrationsAllowed)
	require.False(t, *patch.RegistrationsAllowed)
	require.NotNil(t, patch.CPIChangeAllowed)
	require.True(t, *patch.CPIChangeAllowed)
}

func TestParseSettingsPatchDropsNonBooleans(t *testing.T) {
	patch, err := ParseSettingsPatch([]byte(`{"registrations_allowed": "yes", "cpi_change_allowed": 1, "other": true}`))
	require.NoError(t, err)
	require.True(t, patch.IsEmpty())
}

func TestParseSettingsPatchPartial(t *testing.T) {
	patch, err := ParseSettingsPatch([]byte(`{"cpi_change_allowed": false, "registrations_allowed": null}`))
	require.NoError(t, err)
	require.Nil(t, patch.RegistrationsAllowed)
	require.NotNil(t, patch.CPIChangeAllowed)
	require.False(t, *patch.CPIChangeAllowed)
}

func TestParseSettingsPatchMissingBody(t *testing.T) {
	for _, body := range []string{"", "   \n", "null"} {
		_, err := ParseSettingsPatch([]byte(body))
		require.ErrorIs(t, err, ErrNoSettingsBody, "body %q", body)
	}
}

func TestParseSettingsPatchNonObjectIsEmpty(t *testing.T) {
	for _, body := range []string{`[true]`, `"registrations_allowed"`, `42`, `true`} {
		patch, err := ParseSettingsPatch([]byte(body))
		require.NoError(t, err, "body %q", body)
		require.True(t, patch.IsEmpty(), "body %q", body)
	}
}

func TestParseSettingsPatchMalformedJSON(t *testing.T) {
	_, err := ParseSettingsPatch([]byte(`{"registrations_allowed":`))
	require.ErrorIs(t, err, ErrInvalidSettingsPayload)
}
