package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const EventExportCreated = "export.created"

type ExportEvent struct {
	EventType  string    `json:"eventType"`
	OwnerID    uuid.UUID `json:"ownerId"`
	DownloadID string    `json:"downloadId"`
	FileName   string    `json:"fileName"`
	Format     string    `json:"format"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ExportEventPublisher interface {
	PublishExportEvent(ctx context.Context, event ExportEvent) error
}
