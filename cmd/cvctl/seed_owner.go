package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khoahotran/cv-studio/adapters/persistence"
	authUC "github.com/khoahotran/cv-studio/internal/application/usecase/auth"
	"github.com/khoahotran/cv-studio/internal/config"
	"github.com/khoahotran/cv-studio/pkg/logger"
)

func newSeedOwnerCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "seed-owner",
		Short: "Create the owner account or reset its password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				email = os.Getenv("OWNER_EMAIL")
			}
			if password == "" {
				password = os.Getenv("OWNER_PASSWORD")
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := logger.NewZapLogger(cfg.App.Env)
			defer log.Sync()

			pool, err := persistence.NewPostgresPool(cfg, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			u, err := authUC.NewSeedOwnerUseCase(persistence.NewPostgresUserRepo(pool), log).
				Execute(context.Background(), authUC.SeedOwnerInput{Email: email, Password: password, Name: name})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added or updated owner '%s' (%s)\n", u.Email, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Owner email (default $OWNER_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Owner password (default $OWNER_PASSWORD)")
	cmd.Flags().StringVar(&name, "name", "", "Owner display name")
	return cmd
}
