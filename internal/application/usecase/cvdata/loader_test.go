package cvdata

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/internal/domain/template"
	"github.com/khoahotran/cv-studio/internal/mocks"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	profiles    *mocks.ProfileRepository
	experiences *mocks.ExperienceRepository
	education   *mocks.EducationRepository
	skills      *mocks.SkillRepository
	templates   *mocks.TemplateRepository
	loader      *Loader
}

func newFixture() *fixture {
	f := &fixture{
		profiles:    &mocks.ProfileRepository{},
		experiences: &mocks.ExperienceRepository{},
		education:   &mocks.EducationRepository{},
		skills:      &mocks.SkillRepository{},
		templates:   &mocks.TemplateRepository{},
	}
	f.loader = NewLoader(f.profiles, f.experiences, f.education, f.skills, f.templates)
	return f
}

func TestRecordsToleratesMissingProfile(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	a := &cv.Experience{ID: uuid.New(), StartDate: "2019-01"}
	b := &cv.Experience{ID: uuid.New(), StartDate: "2023-01"}

	f.profiles.On("GetByOwner", mock.Anything, owner).Return(nil, apperror.NewNotFound("profile", owner.String()))
	f.experiences.On("ListByOwner", mock.Anything, owner).Return([]*cv.Experience{a, b}, nil)
	f.education.On("ListByOwner", mock.Anything, owner).Return([]*cv.Education{}, nil)
	f.skills.On("ListByOwner", mock.Anything, owner).Return([]*cv.Skill{}, nil)

	got, err := f.loader.Records(context.Background(), owner)
	require.NoError(t, err)
	assert.Nil(t, got.Profile)
	assert.Equal(t, []*cv.Experience{b, a}, got.Experiences)
}

func TestRecordsPropagatesFailure(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	boom := errors.New("db down")

	f.profiles.On("GetByOwner", mock.Anything, owner).Return(&cv.Profile{}, nil)
	f.experiences.On("ListByOwner", mock.Anything, owner).Return(nil, boom)
	f.education.On("ListByOwner", mock.Anything, owner).Return([]*cv.Education{}, nil).Maybe()
	f.skills.On("ListByOwner", mock.Anything, owner).Return([]*cv.Skill{}, nil).Maybe()

	_, err := f.loader.Records(context.Background(), owner)
	assert.ErrorIs(t, err, boom)
}

func TestProjectionThroughTemplate(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	skill := &cv.Skill{ID: uuid.New(), SkillName: "Go"}
	tpl := &template.Template{ID: uuid.New(), Input: template.NewInput("T")}
	tpl.SelectedSkillIDs = []uuid.UUID{skill.ID}
	tpl.IncludeProfile = false

	f.templates.On("FindByID", mock.Anything, tpl.ID, owner).Return(tpl, nil)
	f.profiles.On("GetByOwner", mock.Anything, owner).Return(&cv.Profile{FullName: "Jane"}, nil)
	f.experiences.On("ListByOwner", mock.Anything, owner).Return([]*cv.Experience{{ID: uuid.New()}}, nil)
	f.education.On("ListByOwner", mock.Anything, owner).Return([]*cv.Education{}, nil)
	f.skills.On("ListByOwner", mock.Anything, owner).Return([]*cv.Skill{skill, {ID: uuid.New()}}, nil)

	got, used, err := f.loader.Projection(context.Background(), owner, &tpl.ID)
	require.NoError(t, err)
	assert.Same(t, tpl, used)
	assert.Nil(t, got.Profile)
	assert.Empty(t, got.Experiences)
	assert.Equal(t, []*cv.Skill{skill}, got.Skills)
}

func TestDefaultProjectionFallsBackToEverything(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	f.profiles.On("GetByOwner", mock.Anything, owner).Return(&cv.Profile{FullName: "Jane"}, nil)
	f.experiences.On("ListByOwner", mock.Anything, owner).Return([]*cv.Experience{{ID: uuid.New()}}, nil)
	f.education.On("ListByOwner", mock.Anything, owner).Return([]*cv.Education{}, nil)
	f.skills.On("ListByOwner", mock.Anything, owner).Return([]*cv.Skill{}, nil)
	f.templates.On("FindDefault", mock.Anything, owner).Return(nil, apperror.NewNotFound("template", "default"))

	got, err := f.loader.DefaultProjection(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Profile.FullName)
	assert.Len(t, got.Experiences, 1)
}
