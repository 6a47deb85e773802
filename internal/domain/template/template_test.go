package template

import (
	"testing"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupe(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.Equal(t, []uuid.UUID{a, b}, Dedupe([]uuid.UUID{a, uuid.Nil, b, a, b}))
	assert.Empty(t, Dedupe(nil))
}

func TestInputNormalizeAndValidate(t *testing.T) {
	in := NewInput("   ")
	in.Normalize()
	assert.ErrorIs(t, in.Validate(), ErrNameRequired)

	in = NewInput(" Backend ")
	in.Normalize()
	require.NoError(t, in.Validate())
	assert.Equal(t, "Backend", in.Name)
	assert.True(t, in.IncludeProfile)
	assert.True(t, in.IncludeLanguages)
	assert.False(t, in.IsDefault)
}

func TestProject(t *testing.T) {
	older := &cv.Experience{ID: uuid.New(), JobTitle: "Old", StartDate: "2015-01"}
	newer := &cv.Experience{ID: uuid.New(), JobTitle: "New", StartDate: "2021-01"}
	skill := &cv.Skill{ID: uuid.New(), SkillName: "Go"}
	profile := &cv.Profile{FullName: "Jane", Languages: cv.LanguageList{{Language: "English"}}}
	all := cv.Records{Profile: profile, Experiences: []*cv.Experience{older, newer}, Skills: []*cv.Skill{skill}}

	tpl := &Template{Input: NewInput("T")}
	tpl.SelectedExperienceIDs = []uuid.UUID{older.ID, uuid.New(), newer.ID}
	tpl.IncludeLanguages = false

	got := tpl.Project(all)
	assert.Equal(t, []*cv.Experience{newer, older}, got.Experiences)
	assert.Empty(t, got.Skills)
	require.NotNil(t, got.Profile)
	assert.Equal(t, "Jane", got.Profile.FullName)
	assert.Empty(t, got.Profile.Languages)
	assert.Len(t, profile.Languages, 1, "source profile must not be mutated")

	tpl.IncludeProfile = false
	assert.Nil(t, tpl.Project(all).Profile)
}
