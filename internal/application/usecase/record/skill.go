package record

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/khoahotran/cv-studio/pkg/logger"
)

type SkillUseCase struct {
	repo   cv.SkillRepository
	logger logger.Logger
}

func NewSkillUseCase(r cv.SkillRepository, log logger.Logger) *SkillUseCase {
	return &SkillUseCase{repo: r, logger: log}
}

func (uc *SkillUseCase) List(ctx context.Context, ownerID uuid.UUID) ([]*cv.Skill, error) {
	items, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	cv.SortSkills(items)
	return items, nil
}

func (uc *SkillUseCase) Get(ctx context.Context, id, ownerID uuid.UUID) (*cv.Skill, error) {
	return uc.repo.FindByID(ctx, id, ownerID)
}

func (uc *SkillUseCase) Create(ctx context.Context, ownerID uuid.UUID, draft cv.Skill) (*cv.Skill, error) {
	now := time.Now().UTC()
	s := draft
	s.ID = uuid.New()
	s.OwnerID = ownerID
	s.CreatedAt = now
	s.UpdatedAt = now
	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.repo.Save(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (uc *SkillUseCase) Update(ctx context.Context, id, ownerID uuid.UUID, draft cv.Skill) (*cv.Skill, error) {
	s, err := uc.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	s.SkillName = draft.SkillName
	s.Category = draft.Category
	s.Proficiency = draft.Proficiency
	s.Order = draft.Order
	s.UpdatedAt = time.Now().UTC()

	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *SkillUseCase) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return uc.repo.Delete(ctx, id, ownerID)
}
