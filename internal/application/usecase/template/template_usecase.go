package template

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/domain/template"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/khoahotran/cv-studio/pkg/logger"
	"go.uber.org/zap"
)

type TemplateUseCase struct {
	repo   template.Repository
	logger logger.Logger
}

func NewTemplateUseCase(r template.Repository, log logger.Logger) *TemplateUseCase {
	return &TemplateUseCase{repo: r, logger: log}
}

func (uc *TemplateUseCase) List(ctx context.Context, ownerID uuid.UUID) ([]*template.Template, error) {
	return uc.repo.ListByOwner(ctx, ownerID)
}

func (uc *TemplateUseCase) Get(ctx context.Context, id, ownerID uuid.UUID) (*template.Template, error) {
	return uc.repo.FindByID(ctx, id, ownerID)
}

func (uc *TemplateUseCase) Create(ctx context.Context, ownerID uuid.UUID, in template.Input) (*template.Template, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	now := time.Now().UTC()
	t := &template.Template{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Input:     in,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	uc.logger.Info("Template created", zap.String("template_id", t.ID.String()), zap.String("name", t.Name))
	return t, nil
}

// Update replaces every field of the template with in.
func (uc *TemplateUseCase) Update(ctx context.Context, id, ownerID uuid.UUID, in template.Input) (*template.Template, error) {
	t, err := uc.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	t.Input = in
	t.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *TemplateUseCase) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return uc.repo.Delete(ctx, id, ownerID)
}
