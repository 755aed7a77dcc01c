package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/charlesng35/settingsd/internal/app"
	"github.com/charlesng35/settingsd/pkg/logger"
)

// execContext carries state shared by every subcommand once the configuration is loaded.
type execContext struct {
	configPath string

	Config    *app.Config
	Generated map[string]bool
	Logger    *zap.Logger
}

func newRootCmd() *cobra.Command {
	ec := &execContext{}

	rootCmd := &cobra.Command{
		Use:           "settingsd",
		Short:         "Global platform settings service",
		Long:          "settingsd serves and manages the global registrations_allowed and cpi_change_allowed flags.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ec.prepare()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	f := rootCmd.PersistentFlags()
	f.StringVarP(&ec.configPath, "config", "c", "", "path to a configuration file or a directory containing config.yaml")

	rootCmd.AddCommand(
		newServeCmd(ec),
		newBootstrapCmd(ec),
		newSettingsCmd(ec),
		newTokenCmd(ec),
	)
	return rootCmd
}

// prepare loads configuration, fills runtime secrets and configures logging.
func (ec *execContext) prepare() error {
	cfg, err := loadApplicationConfig(ec.configPath)
	if err != nil {
		return err
	}

	generated, err := app.ApplyRuntimeDefaults(cfg)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := app.ConfigureLoggingFormat(cfg.Server.LogLevel, cfg.Server.LogFormat); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	ec.Config = cfg
	ec.Generated = generated
	ec.Logger = logger.WithModule("bootstrap")

	for key := range generated {
		ec.Logger.Info("generated runtime secret", zap.String("key", key))
	}
	return nil
}

func loadApplicationConfig(path string) (*app.Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return app.LoadConfig()
	}

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return app.LoadConfig(path)
	case err == nil:
		return app.LoadConfigFile(path)
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("config path %q does not exist", path)
	default:
		return nil, fmt.Errorf("stat config path: %w", err)
	}
}
