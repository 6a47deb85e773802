package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/khoahotran/cv-studio/internal/application/service"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/khoahotran/cv-studio/pkg/logger"
	"go.uber.org/zap"
)

// ArchiveExportUseCase copies a finished export from the download store into
// long-term media storage.
type ArchiveExportUseCase struct {
	store    service.ExportStore
	uploader service.Uploader
	logger   logger.Logger
}

func NewArchiveExportUseCase(store service.ExportStore, uploader service.Uploader, log logger.Logger) *ArchiveExportUseCase {
	return &ArchiveExportUseCase{store: store, uploader: uploader, logger: log}
}

func (uc *ArchiveExportUseCase) Execute(ctx context.Context, event service.ExportEvent) error {
	if event.EventType != service.EventExportCreated {
		return nil
	}
	log := uc.logger.With(zap.String("download_id", event.DownloadID), zap.String("owner_id", event.OwnerID.String()))

	file, err := uc.store.Get(ctx, event.OwnerID, event.DownloadID)
	if errors.Is(err, apperror.ErrNotFound) {
		log.Warn("Export expired before it could be archived")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load export: %w", err)
	}

	folder := fmt.Sprintf("users/%s/cv-exports", event.OwnerID)
	publicID := strings.TrimSuffix(file.Name, path.Ext(file.Name))
	url, err := uc.uploader.Upload(ctx, bytes.NewReader(file.Data), folder, publicID)
	if err != nil {
		log.Error("Failed to archive export", err)
		return err
	}

	log.Info("Export archived", zap.String("url", url), zap.String("file_name", file.Name))
	return nil
}
