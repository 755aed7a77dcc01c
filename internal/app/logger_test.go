package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/charlesng35/settingsd/pkg/logger"
)

func TestConfigureLogging(t *testing.T) {
	t.Cleanup(func() { logger.Replace(nil) })

	require.NoError(t, ConfigureLogging("debug"))
	require.True(t, logger.Logger().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, ConfigureLogging(""))
	require.False(t, logger.Logger().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, ConfigureLoggingFormat("warn", "console"))
	require.False(t, logger.Logger().Core().Enabled(zapcore.InfoLevel))
}
