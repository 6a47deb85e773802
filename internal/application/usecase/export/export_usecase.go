package export

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/application/service"
	"github.com/khoahotran/cv-studio/internal/application/usecase/cvdata"
	"github.com/khoahotran/cv-studio/internal/core/aiexport"
	"github.com/khoahotran/cv-studio/internal/core/export"
	"github.com/khoahotran/cv-studio/internal/core/render"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/internal/domain/template"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/khoahotran/cv-studio/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("export_usecase")

type Format string

const (
	FormatJSON Format = "json"
	FormatAI   Format = "ai"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatAI, FormatPDF:
		return f, nil
	}
	return "", apperror.NewInvalidInput(fmt.Sprintf("unknown export format %q", s), nil)
}

type ExportUseCase struct {
	loader    *cvdata.Loader
	renderer  service.PDFRenderer
	store     service.ExportStore
	publisher service.ExportEventPublisher
	logger    logger.Logger
	now       func() time.Time
}

func NewExportUseCase(
	loader *cvdata.Loader,
	renderer service.PDFRenderer,
	store service.ExportStore,
	publisher service.ExportEventPublisher,
	log logger.Logger,
) *ExportUseCase {
	return &ExportUseCase{
		loader:    loader,
		renderer:  renderer,
		store:     store,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

type ExportInput struct {
	OwnerID    uuid.UUID
	TemplateID *uuid.UUID
	Format     Format
}

type ExportOutput struct {
	DownloadID  string
	FileName    string
	ContentType string
	Size        int
}

// Execute builds the export and stores it for download. Nothing is stored
// unless the whole file was produced.
func (uc *ExportUseCase) Execute(ctx context.Context, input ExportInput) (*ExportOutput, error) {
	ctx, span := tracer.Start(ctx, "Export")
	defer span.End()
	span.SetAttributes(attribute.String("format", string(input.Format)))

	projection, tpl, err := uc.loader.Projection(ctx, input.OwnerID, input.TemplateID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	file, err := uc.Build(ctx, input.Format, projection, tpl)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	downloadID, err := uc.store.Put(ctx, input.OwnerID, file)
	if err != nil {
		uc.logger.Error("Failed to store export", err, zap.String("file_name", file.Name))
		return nil, apperror.NewInternal("failed to store export", err)
	}

	uc.publish(service.ExportEvent{
		EventType:  service.EventExportCreated,
		OwnerID:    input.OwnerID,
		DownloadID: downloadID,
		FileName:   file.Name,
		Format:     string(input.Format),
		CreatedAt:  uc.now().UTC(),
	})

	uc.logger.Info("Export created",
		zap.String("download_id", downloadID),
		zap.String("file_name", file.Name),
		zap.Int("size", len(file.Data)),
	)
	return &ExportOutput{
		DownloadID:  downloadID,
		FileName:    file.Name,
		ContentType: file.ContentType,
		Size:        len(file.Data),
	}, nil
}

// Build produces the file for a projection. tpl may be nil.
func (uc *ExportUseCase) Build(ctx context.Context, format Format, projection cv.Records, tpl *template.Template) (*export.File, error) {
	now := uc.now()
	switch format {
	case FormatJSON:
		if tpl == nil {
			return export.JSONFile(export.FullFileName(now), export.FullDocument(projection, now))
		}
		return export.JSONFile(export.TemplateFileName(tpl.Name, now), export.TemplateDocument(tpl, projection, now))
	case FormatAI:
		return export.JSONFile(export.AIFileName(now), aiexport.Format(projection, now))
	case FormatPDF:
		return uc.buildPDF(ctx, projection, now)
	}
	return nil, apperror.NewInvalidInput(fmt.Sprintf("unknown export format %q", format), nil)
}

func (uc *ExportUseCase) buildPDF(ctx context.Context, projection cv.Records, now time.Time) (*export.File, error) {
	view := render.Build(projection)
	html, err := render.Document(view)
	if err != nil {
		return nil, apperror.NewExportFailed(string(FormatPDF), err)
	}
	pdf, err := uc.renderer.PrintPDF(ctx, html)
	if err != nil {
		uc.logger.Error("PDF rendering failed", err)
		return nil, apperror.NewExportFailed(string(FormatPDF), err)
	}
	if len(pdf) == 0 {
		return nil, apperror.NewExportFailed(string(FormatPDF), fmt.Errorf("renderer returned an empty document"))
	}
	return &export.File{
		Name:        export.PDFFileName(view.Header.Name, now),
		ContentType: export.ContentTypePDF,
		Data:        pdf,
	}, nil
}

// Download returns a stored export.
func (uc *ExportUseCase) Download(ctx context.Context, ownerID uuid.UUID, downloadID string) (*export.File, error) {
	return uc.store.Get(ctx, ownerID, downloadID)
}

func (uc *ExportUseCase) publish(event service.ExportEvent) {
	if uc.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.publisher.PublishExportEvent(ctx, event); err != nil {
			uc.logger.Error("Failed to publish export event", err, zap.String("download_id", event.DownloadID))
		}
	}()
}
