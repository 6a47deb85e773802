package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/application/service"
	"github.com/khoahotran/cv-studio/internal/core/export"
	"github.com/stretchr/testify/mock"
)

type Uploader struct{ mock.Mock }

func (m *Uploader) Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	args := m.Called(ctx, file, folder, publicID)
	return args.String(0), args.Error(1)
}

func (m *Uploader) Delete(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

type PDFRenderer struct{ mock.Mock }

func (m *PDFRenderer) PrintPDF(ctx context.Context, html []byte) ([]byte, error) {
	args := m.Called(ctx, html)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type AIEditor struct{ mock.Mock }

func (m *AIEditor) EditDocument(ctx context.Context, instruction string, document []byte) ([]byte, error) {
	args := m.Called(ctx, instruction, document)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type ExportStore struct{ mock.Mock }

func (m *ExportStore) Put(ctx context.Context, ownerID uuid.UUID, file *export.File) (string, error) {
	args := m.Called(ctx, ownerID, file)
	return args.String(0), args.Error(1)
}

func (m *ExportStore) Get(ctx context.Context, ownerID uuid.UUID, downloadID string) (*export.File, error) {
	args := m.Called(ctx, ownerID, downloadID)
	f, _ := args.Get(0).(*export.File)
	return f, args.Error(1)
}

type ExportEventPublisher struct{ mock.Mock }

func (m *ExportEventPublisher) PublishExportEvent(ctx context.Context, event service.ExportEvent) error {
	return m.Called(ctx, event).Error(0)
}
