package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	iauth "github.com/charlesng35/settingsd/internal/auth"
)

type tokenOptions struct {
	userID string
	roles  []string
	ttl    time.Duration
}

func newTokenCmd(ec *execContext) *cobra.Command {
	opts := &tokenOptions{}

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for the admin API",
		Example: `  # Token for an operator allowed to change settings:
  settingsd token --user ops@example.com --role admin --ttl 1h`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ec.Generated["auth.jwt.secret"] {
				return errors.New("auth.jwt.secret is not configured; a generated secret would not match the server's")
			}
			if strings.TrimSpace(opts.userID) == "" {
				return errors.New("--user is required")
			}

			roles := opts.roles
			if !cmd.Flags().Changed("role") {
				roles = []string{ec.Config.Auth.JWT.AdminRole}
			}

			jwtSvc, err := iauth.NewJWTService(ec.Config.Auth.JWTServiceConfig())
			if err != nil {
				return fmt.Errorf("initialise jwt service: %w", err)
			}

			token, err := jwtSvc.GenerateAccessToken(iauth.AccessTokenInput{
				UserID: strings.TrimSpace(opts.userID),
				Roles:  roles,
				TTL:    opts.ttl,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	f := tokenCmd.Flags()
	f.StringVarP(&opts.userID, "user", "u", "", "user id placed in the token")
	f.StringSliceVarP(&opts.roles, "role", "r", nil, "role granted by the token (repeatable; defaults to auth.jwt.admin_role)")
	f.DurationVar(&opts.ttl, "ttl", 0, "token lifetime (defaults to auth.jwt.access_token_ttl)")
	return tokenCmd
}
