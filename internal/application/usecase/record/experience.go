package record

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/khoahotran/cv-studio/pkg/logger"
	"go.uber.org/zap"
)

type ExperienceUseCase struct {
	repo   cv.ExperienceRepository
	logger logger.Logger
}

func NewExperienceUseCase(r cv.ExperienceRepository, log logger.Logger) *ExperienceUseCase {
	return &ExperienceUseCase{repo: r, logger: log}
}

func (uc *ExperienceUseCase) List(ctx context.Context, ownerID uuid.UUID) ([]*cv.Experience, error) {
	items, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	cv.SortExperiences(items)
	return items, nil
}

func (uc *ExperienceUseCase) Get(ctx context.Context, id, ownerID uuid.UUID) (*cv.Experience, error) {
	return uc.repo.FindByID(ctx, id, ownerID)
}

func (uc *ExperienceUseCase) Create(ctx context.Context, ownerID uuid.UUID, draft cv.Experience) (*cv.Experience, error) {
	now := time.Now().UTC()
	e := draft
	e.ID = uuid.New()
	e.OwnerID = ownerID
	e.CreatedAt = now
	e.UpdatedAt = now
	e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.repo.Save(ctx, &e); err != nil {
		return nil, err
	}
	uc.logger.Info("Experience created", zap.String("experience_id", e.ID.String()))
	return &e, nil
}

func (uc *ExperienceUseCase) Update(ctx context.Context, id, ownerID uuid.UUID, draft cv.Experience) (*cv.Experience, error) {
	e, err := uc.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	e.JobTitle = draft.JobTitle
	e.Company = draft.Company
	e.Location = draft.Location
	e.StartDate = draft.StartDate
	e.EndDate = draft.EndDate
	e.IsCurrent = draft.IsCurrent
	e.Overview = draft.Overview
	e.RoleCategories = draft.RoleCategories
	e.Description = draft.Description
	e.Order = draft.Order
	e.UpdatedAt = time.Now().UTC()

	e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (uc *ExperienceUseCase) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return uc.repo.Delete(ctx, id, ownerID)
}
