package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/core/export"
)

// ExportStore keeps finished export files available for download for a
// limited time. Only complete files are ever stored.
type ExportStore interface {
	Put(ctx context.Context, ownerID uuid.UUID, file *export.File) (downloadID string, err error)
	Get(ctx context.Context, ownerID uuid.UUID, downloadID string) (*export.File, error)
}
