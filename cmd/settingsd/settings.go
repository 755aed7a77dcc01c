package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/charlesng35/settingsd/internal/database"
	"github.com/charlesng35/settingsd/internal/models"
	"github.com/charlesng35/settingsd/internal/services"
)

func newSettingsCmd(ec *execContext) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:          "settings",
		Short:        "Read or change the global settings",
		SilenceUsage: true,
	}
	settingsCmd.AddCommand(
		newSettingsGetCmd(ec),
		newSettingsSetCmd(ec),
	)
	return settingsCmd
}

func newSettingsGetCmd(ec *execContext) *cobra.Command {
	return &cobra.Command{
		Use:          "get",
		Short:        "Print the global settings as JSON",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettingsService(ec, func(svc *services.SettingsService) error {
				view, err := svc.GetSettings(cmd.Context())
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			})
		},
	}
}

type settingsSetOptions struct {
	registrationsAllowed bool
	cpiChangeAllowed     bool
}

func newSettingsSetCmd(ec *execContext) *cobra.Command {
	opts := &settingsSetOptions{}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or both global flags",
		Example: `  # Close registrations:
  settingsd settings set --registrations-allowed=false

  # Change both flags:
  settingsd settings set --registrations-allowed --cpi-change-allowed=false`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := opts.patch(cmd)
			return withSettingsService(ec, func(svc *services.SettingsService) error {
				if err := svc.ChangeSettings(cmd.Context(), services.SystemActor, patch); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "OK")
				return nil
			})
		},
	}

	f := setCmd.Flags()
	f.BoolVar(&opts.registrationsAllowed, "registrations-allowed", false, "allow new user registrations")
	f.BoolVar(&opts.cpiChangeAllowed, "cpi-change-allowed", false, "allow CPI changes")
	return setCmd
}

// patch includes only the flags given explicitly on the command line.
func (o *settingsSetOptions) patch(cmd *cobra.Command) models.GlobalSettingsPatch {
	f := cmd.Flags()
	return models.GlobalSettingsPatch{
		RegistrationsAllowed: changedBool(f, "registrations-allowed", o.registrationsAllowed),
		CPIChangeAllowed:     changedBool(f, "cpi-change-allowed", o.cpiChangeAllowed),
	}
}

func changedBool(f *pflag.FlagSet, name string, value bool) *bool {
	if !f.Changed(name) {
		return nil
	}
	return &value
}

// withSettingsService opens the database, builds a SettingsService and closes the database afterwards.
func withSettingsService(ec *execContext, fn func(*services.SettingsService) error) (err error) {
	db, err := openDatabase(ec.Config)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, closeDatabase(db)) }()

	svc, err := newCLISettingsService(ec, db)
	if err != nil {
		return err
	}
	return fn(svc)
}

func newCLISettingsService(ec *execContext, db *gorm.DB) (*services.SettingsService, error) {
	store, err := database.NewSettingsStore(db)
	if err != nil {
		return nil, err
	}

	var opts []services.SettingsOption
	if ec.Config.Audit.Enabled {
		auditSvc, err := services.NewAuditService(db)
		if err != nil {
			return nil, err
		}
		opts = append(opts, services.WithSettingsAudit(auditSvc))
	}
	return services.NewSettingsService(store, opts...)
}
