package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khoahotran/cv-studio/adapters/media_storage"
	"github.com/khoahotran/cv-studio/adapters/persistence"
	"github.com/khoahotran/cv-studio/internal/application/usecase/backup"
	"github.com/khoahotran/cv-studio/internal/application/usecase/cvdata"
	"github.com/khoahotran/cv-studio/internal/config"
	"github.com/khoahotran/cv-studio/pkg/logger"
)

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Upload a JSON snapshot of the owner's CV and templates to media storage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := logger.NewZapLogger(cfg.App.Env)
			defer log.Sync()

			uploader, err := media_storage.NewCloudinaryAdapter(cfg, log)
			if err != nil {
				return err
			}
			pool, err := persistence.NewPostgresPool(cfg, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			owner, err := persistence.NewPostgresUserRepo(pool).FindOwner(ctx)
			if err != nil {
				return fmt.Errorf("find owner: %w", err)
			}
			templates := persistence.NewPostgresTemplateRepo(pool)
			loader := cvdata.NewLoader(
				persistence.NewPostgresProfileRepo(pool, log),
				persistence.NewPostgresExperienceRepo(pool),
				persistence.NewPostgresEducationRepo(pool),
				persistence.NewPostgresSkillRepo(pool),
				templates,
			)

			url, err := backup.NewBackupUseCase(loader, templates, uploader, log).Execute(ctx, owner.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}
