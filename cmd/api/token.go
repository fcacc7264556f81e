package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinic-registry/config"
	"github.com/jwalitptl/clinic-registry/pkg/auth"
)

func tokenCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "token <operator>",
		Short: "Issue a bearer token for the write endpoints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			if cfg.Auth.Secret == "" {
				return errors.New("auth.secret is not set")
			}

			jwtSvc := auth.NewJWTService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
			token, err := jwtSvc.GenerateToken(args[0])
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
