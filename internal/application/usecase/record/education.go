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

type EducationUseCase struct {
	repo   cv.EducationRepository
	logger logger.Logger
}

func NewEducationUseCase(r cv.EducationRepository, log logger.Logger) *EducationUseCase {
	return &EducationUseCase{repo: r, logger: log}
}

func (uc *EducationUseCase) List(ctx context.Context, ownerID uuid.UUID) ([]*cv.Education, error) {
	items, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	cv.SortEducation(items)
	return items, nil
}

func (uc *EducationUseCase) Get(ctx context.Context, id, ownerID uuid.UUID) (*cv.Education, error) {
	return uc.repo.FindByID(ctx, id, ownerID)
}

func (uc *EducationUseCase) Create(ctx context.Context, ownerID uuid.UUID, draft cv.Education) (*cv.Education, error) {
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
	uc.logger.Info("Education entry created", zap.String("education_id", e.ID.String()))
	return &e, nil
}

func (uc *EducationUseCase) Update(ctx context.Context, id, ownerID uuid.UUID, draft cv.Education) (*cv.Education, error) {
	e, err := uc.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	e.School = draft.School
	e.Degree = draft.Degree
	e.Field = draft.Field
	e.Location = draft.Location
	e.StartDate = draft.StartDate
	e.EndDate = draft.EndDate
	e.IsOngoing = draft.IsOngoing
	e.Overview = draft.Overview
	e.EducationSections = draft.EducationSections
	e.Website = draft.Website
	e.EQFLevel = draft.EQFLevel
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

func (uc *EducationUseCase) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return uc.repo.Delete(ctx, id, ownerID)
}
