package backup

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/application/service"
	"github.com/khoahotran/cv-studio/internal/application/usecase/cvdata"
	"github.com/khoahotran/cv-studio/internal/core/export"
	"github.com/khoahotran/cv-studio/internal/domain/template"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/khoahotran/cv-studio/pkg/logger"
	"go.uber.org/zap"
)

// Snapshot is everything an owner has: a full export plus every template.
// Its records section can be re-imported like any full export.
type Snapshot struct {
	export.Document
	Templates []*template.Template `json:"templates"`
}

type BackupUseCase struct {
	loader    *cvdata.Loader
	templates template.Repository
	uploader  service.Uploader
	logger    logger.Logger
	now       func() time.Time
}

func NewBackupUseCase(loader *cvdata.Loader, templates template.Repository, uploader service.Uploader, log logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		loader:    loader,
		templates: templates,
		uploader:  uploader,
		logger:    log,
		now:       time.Now,
	}
}

// Execute uploads a snapshot of the owner's CV and returns its URL.
func (uc *BackupUseCase) Execute(ctx context.Context, ownerID uuid.UUID) (string, error) {
	if uc.uploader == nil {
		return "", apperror.NewInvalidInput("media storage is not configured", nil)
	}
	log := uc.logger.With(zap.String("owner_id", ownerID.String()))
	log.Info("Starting CV backup...")

	records, err := uc.loader.Records(ctx, ownerID)
	if err != nil {
		return "", err
	}
	templates, err := uc.templates.ListByOwner(ctx, ownerID)
	if err != nil {
		return "", err
	}

	now := uc.now().UTC()
	file, err := export.JSONFile("", Snapshot{
		Document:  export.FullDocument(records, now),
		Templates: templates,
	})
	if err != nil {
		return "", apperror.NewInternal("failed to encode backup", err)
	}

	folder := fmt.Sprintf("users/%s/cv-backups", ownerID)
	publicID := fmt.Sprintf("backup-%s", now.Format("2006-01-02_15-04-05"))
	url, err := uc.uploader.Upload(ctx, bytes.NewReader(file.Data), folder, publicID)
	if err != nil {
		log.Error("Failed to upload backup", err)
		return "", apperror.NewExportFailed("backup", err)
	}

	log.Info("CV backup uploaded", zap.String("url", url), zap.Int("size_bytes", len(file.Data)))
	return url, nil
}
