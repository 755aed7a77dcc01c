package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/charlesng35/settingsd/internal/database"
	"github.com/charlesng35/settingsd/internal/services"
)

func newBootstrapCmd(ec *execContext) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Migrate the schema and create the global settings row if it is missing",
		Long: `Runs database migrations and creates the global settings row from
settings.defaults. An existing row is never modified.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()

			db, err := openDatabase(ec.Config)
			if err != nil {
				return err
			}
			defer func() { err = multierr.Append(err, closeDatabase(db)) }()

			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("auto-migrate database: %w", err)
			}

			created, err := database.EnsureGlobalSettings(ctx, db, ec.Config.Settings.GlobalSettings())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !created {
				fmt.Fprintln(out, "global settings already present; left unchanged")
				return nil
			}

			defaults := ec.Config.Settings.Defaults
			ec.Logger.Info("global settings created",
				zap.Bool("registrations_allowed", defaults.RegistrationsAllowed),
				zap.Bool("cpi_change_allowed", defaults.CPIChangeAllowed),
			)

			if ec.Config.Audit.Enabled {
				auditSvc, err := services.NewAuditService(db)
				if err != nil {
					return err
				}
				if err := auditSvc.Log(ctx, services.AuditEntry{
					UserID:   services.SystemActor.UserID,
					Action:   "settings.bootstrapped",
					Resource: "settings:global",
					Result:   "success",
					Metadata: map[string]any{
						"registrations_allowed": defaults.RegistrationsAllowed,
						"cpi_change_allowed":    defaults.CPIChangeAllowed,
					},
				}); err != nil {
					ec.Logger.Warn("audit log write failed", zap.Error(err))
				}
			}

			fmt.Fprintln(out, "global settings created")
			return nil
		},
	}
}
