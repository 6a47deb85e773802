// Package mocks holds testify mocks of the repositories and ports used by the
// use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/internal/domain/template"
	"github.com/khoahotran/cv-studio/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

type ProfileRepository struct{ mock.Mock }

func (m *ProfileRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*cv.Profile, error) {
	args := m.Called(ctx, ownerID)
	p, _ := args.Get(0).(*cv.Profile)
	return p, args.Error(1)
}

func (m *ProfileRepository) Upsert(ctx context.Context, p *cv.Profile) error {
	return m.Called(ctx, p).Error(0)
}

type ExperienceRepository struct{ mock.Mock }

func (m *ExperienceRepository) Save(ctx context.Context, e *cv.Experience) error {
	return m.Called(ctx, e).Error(0)
}

func (m *ExperienceRepository) Update(ctx context.Context, e *cv.Experience) error {
	return m.Called(ctx, e).Error(0)
}

func (m *ExperienceRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

func (m *ExperienceRepository) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*cv.Experience, error) {
	args := m.Called(ctx, id, ownerID)
	e, _ := args.Get(0).(*cv.Experience)
	return e, args.Error(1)
}

func (m *ExperienceRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*cv.Experience, error) {
	args := m.Called(ctx, ownerID)
	items, _ := args.Get(0).([]*cv.Experience)
	return items, args.Error(1)
}

type EducationRepository struct{ mock.Mock }

func (m *EducationRepository) Save(ctx context.Context, e *cv.Education) error {
	return m.Called(ctx, e).Error(0)
}

func (m *EducationRepository) Update(ctx context.Context, e *cv.Education) error {
	return m.Called(ctx, e).Error(0)
}

func (m *EducationRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

func (m *EducationRepository) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*cv.Education, error) {
	args := m.Called(ctx, id, ownerID)
	e, _ := args.Get(0).(*cv.Education)
	return e, args.Error(1)
}

func (m *EducationRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*cv.Education, error) {
	args := m.Called(ctx, ownerID)
	items, _ := args.Get(0).([]*cv.Education)
	return items, args.Error(1)
}

type SkillRepository struct{ mock.Mock }

func (m *SkillRepository) Save(ctx context.Context, s *cv.Skill) error {
	return m.Called(ctx, s).Error(0)
}

func (m *SkillRepository) Update(ctx context.Context, s *cv.Skill) error {
	return m.Called(ctx, s).Error(0)
}

func (m *SkillRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

func (m *SkillRepository) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*cv.Skill, error) {
	args := m.Called(ctx, id, ownerID)
	s, _ := args.Get(0).(*cv.Skill)
	return s, args.Error(1)
}

func (m *SkillRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*cv.Skill, error) {
	args := m.Called(ctx, ownerID)
	items, _ := args.Get(0).([]*cv.Skill)
	return items, args.Error(1)
}

type TemplateRepository struct{ mock.Mock }

func (m *TemplateRepository) Save(ctx context.Context, t *template.Template) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TemplateRepository) Update(ctx context.Context, t *template.Template) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TemplateRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

func (m *TemplateRepository) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*template.Template, error) {
	args := m.Called(ctx, id, ownerID)
	t, _ := args.Get(0).(*template.Template)
	return t, args.Error(1)
}

func (m *TemplateRepository) FindDefault(ctx context.Context, ownerID uuid.UUID) (*template.Template, error) {
	args := m.Called(ctx, ownerID)
	t, _ := args.Get(0).(*template.Template)
	return t, args.Error(1)
}

func (m *TemplateRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*template.Template, error) {
	args := m.Called(ctx, ownerID)
	items, _ := args.Get(0).([]*template.Template)
	return items, args.Error(1)
}

type UserRepository struct{ mock.Mock }

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserRepository) FindOwner(ctx context.Context) (*user.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserRepository) Upsert(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}
