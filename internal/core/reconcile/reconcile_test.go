package reconcile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/internal/domain/template"
	"github.com/khoahotran/cv-studio/pkg/jsonx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, doc string) any {
	t.Helper()
	v, err := jsonx.Decode([]byte(doc))
	require.NoError(t, err)
	return v
}

func strPtr(s string) *string { return &s }

func liveRecords() (cv.Records, *cv.Experience, *cv.Education, *cv.Skill) {
	exp := &cv.Experience{ID: uuid.New(), JobTitle: "Senior Developer", Company: "Tech Corp", StartDate: "2020-01", IsCurrent: true}
	edu := &cv.Education{ID: uuid.New(), School: "MIT", Degree: "BSc", Field: "CS", StartDate: "2014-09", EndDate: strPtr("2018-06")}
	skill := &cv.Skill{ID: uuid.New(), SkillName: "Go", Category: "Tech", Proficiency: "Advanced"}
	return cv.Records{
		Experiences: []*cv.Experience{exp},
		Education:   []*cv.Education{edu},
		Skills:      []*cv.Skill{skill},
	}, exp, edu, skill
}

func TestReconcileUnknownIDIsReported(t *testing.T) {
	e1 := &cv.Experience{ID: uuid.New(), JobTitle: "PM", Company: "Acme", StartDate: "2020-01", IsCurrent: true}
	live := cv.Records{Experiences: []*cv.Experience{e1}}

	raw := decode(t, `{"template":{"name":"T1","selectedExperienceIds":["`+e1.ID.String()+`","e2"]}}`)
	res := Reconcile(raw, live, Options{})

	assert.Equal(t, "T1", res.Input.Name)
	assert.Equal(t, []uuid.UUID{e1.ID}, res.Input.SelectedExperienceIDs)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, `Experience "e2" could not be matched to your current data.`, res.Warnings[0])
	assert.Equal(t, []string{"e2"}, res.Debug.UnmatchedExperiences)
	assert.True(t, res.Meta.HadExperienceSelection)
	assert.Equal(t, 1, res.Meta.MatchedExperienceCount)
	assert.False(t, res.Meta.HadSkillSelection)
}

func TestReconcileNeverFailsOnOddInput(t *testing.T) {
	live, _, _, _ := liveRecords()
	fixed := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	for _, doc := range []string{`null`, `42`, `"text"`, `[1,2]`, `{"template":"x","experiences":"nope","skills":[1,null,"s"]}`} {
		res := Reconcile(decode(t, doc), live, Options{Now: func() time.Time { return fixed }})
		assert.Equal(t, "Imported Template 2024-03-05T10:00:00.000Z", res.Input.Name, doc)
		assert.True(t, res.Input.IncludeProfile)
		assert.True(t, res.Input.IncludeLanguages)
		assert.Empty(t, res.Input.SelectedSkillIDs)
		assert.Empty(t, res.Warnings)
	}
}

func TestReconcileNameAndFlagFallbacks(t *testing.T) {
	raw := decode(t, `{"name":"   ","description":7,"includeProfile":"no","includeLanguages":false}`)
	desc := "kept"
	res := Reconcile(raw, cv.Records{}, Options{FallbackName: "Existing", FallbackDescription: &desc})

	assert.Equal(t, "Existing", res.Input.Name)
	assert.Equal(t, "kept", res.Input.Description)
	assert.True(t, res.Input.IncludeProfile)
	assert.False(t, res.Input.IncludeLanguages)

	raw = decode(t, `{"name":"  Backend CV  ","description":"For backend roles"}`)
	res = Reconcile(raw, cv.Records{}, Options{FallbackName: "Existing"})
	assert.Equal(t, "Backend CV", res.Input.Name)
	assert.Equal(t, "For backend roles", res.Input.Description)
}

func TestReconcileContentMatchFallback(t *testing.T) {
	live, exp, edu, skill := liveRecords()
	stale := uuid.New().String()

	raw := decode(t, `{
		"template": {"name": "Stale", "selectedExperienceIds": ["`+stale+`"]},
		"experiences": [{"id": "`+stale+`", "jobTitle": "  senior DEVELOPER ", "company": "tech corp", "startDate": "2020-01", "endDate": "2023-01"}],
		"education": [{"id": "old-edu", "school": "mit", "degree": "bsc"}],
		"skills": [{"name": "go", "category": "TECH"}]
	}`)
	res := Reconcile(raw, live, Options{})

	assert.Equal(t, []uuid.UUID{exp.ID}, res.Input.SelectedExperienceIDs)
	assert.Equal(t, []uuid.UUID{edu.ID}, res.Input.SelectedEducationIDs)
	assert.Equal(t, []uuid.UUID{skill.ID}, res.Input.SelectedSkillIDs)
	assert.Empty(t, res.Warnings)
	assert.False(t, res.Meta.HadSkillSelection)
	assert.Equal(t, 1, res.Meta.MatchedSkillCount)
}

func TestReconcileIdentityFieldsMustAgree(t *testing.T) {
	live, _, _, _ := liveRecords()
	raw := decode(t, `{
		"experiences": [
			{"id": "x1", "jobTitle": "Senior Developer", "company": "Other Inc"},
			{"id": "x2", "company": "Tech Corp"}
		],
		"education": [{"id": "y1", "school": "MIT", "startDate": "2015-09"}],
		"skills": [{"id": "z1", "skillName": "Go", "proficiency": "Beginner"}]
	}`)
	res := Reconcile(raw, live, Options{})

	assert.Empty(t, res.Input.SelectedExperienceIDs)
	assert.Empty(t, res.Input.SelectedEducationIDs)
	assert.Empty(t, res.Input.SelectedSkillIDs)
	assert.Equal(t, []string{"Senior Developer @ Other Inc", "Role at Tech Corp"}, res.Debug.UnmatchedExperiences)
	assert.Equal(t, []string{"MIT"}, res.Debug.UnmatchedEducation)
	assert.Equal(t, []string{"Go"}, res.Debug.UnmatchedSkills)
	assert.Equal(t, []string{
		`2 experiences from the JSON file could not be matched (Senior Developer @ Other Inc, Role at Tech Corp).`,
		`Education entry "MIT" could not be matched to your current data.`,
		`Skill "Go" could not be matched to your current data.`,
	}, res.Warnings)
}

func TestReconcileEndDateOnlyComparedWhenBothPresent(t *testing.T) {
	live, exp, _, _ := liveRecords()
	raw := decode(t, `{"experiences":[{"jobTitle":"Senior Developer","endDate":"1999-01"}]}`)
	res := Reconcile(raw, live, Options{})
	assert.Equal(t, []uuid.UUID{exp.ID}, res.Input.SelectedExperienceIDs)

	exp.EndDate = strPtr("2022-01")
	res = Reconcile(raw, live, Options{})
	assert.Empty(t, res.Input.SelectedExperienceIDs)
}

func TestReconcileEachLiveRecordMatchedOnce(t *testing.T) {
	a := &cv.Skill{ID: uuid.New(), SkillName: "SQL"}
	b := &cv.Skill{ID: uuid.New(), SkillName: "SQL", Category: "Data"}
	live := cv.Records{Skills: []*cv.Skill{a, b}}

	raw := decode(t, `{"skills":[{"skillName":"sql"},{"skillName":"SQL"},{"skillName":"sql"}]}`)
	res := Reconcile(raw, live, Options{})
	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, res.Input.SelectedSkillIDs)
}

func TestSummarizeTruncatesPreview(t *testing.T) {
	msg := skillKind.summarize([]string{"a", "b", "c", "d", "e"})
	assert.Equal(t, "5 skills from the JSON file could not be matched (a, b, c, and 2 more).", msg)
	assert.Equal(t, "", skillKind.summarize(nil))
}

func TestIDCandidatesAcceptObjectsAndDedupe(t *testing.T) {
	live, exp, _, _ := liveRecords()
	id := exp.ID.String()
	raw := decode(t, `{"selectedExperienceIds":[{"id":"`+id+`"},"`+id+`",5,{"x":1}]}`)
	res := Reconcile(raw, live, Options{})
	assert.Equal(t, []uuid.UUID{exp.ID}, res.Input.SelectedExperienceIDs)
	assert.Empty(t, res.Warnings)
}

func TestReimportOfOwnSnapshotIsIdempotent(t *testing.T) {
	live, exp, edu, skill := liveRecords()
	in := template.NewInput("Roundtrip")
	in.SelectedExperienceIDs = []uuid.UUID{exp.ID}
	in.SelectedEducationIDs = []uuid.UUID{edu.ID}
	in.SelectedSkillIDs = []uuid.UUID{skill.ID}

	doc, err := json.Marshal(map[string]any{
		"template":    in,
		"experiences": live.Experiences,
		"education":   live.Education,
		"skills":      live.Skills,
	})
	require.NoError(t, err)

	res := Reconcile(decode(t, string(doc)), live, Options{})
	assert.Empty(t, res.Warnings)
	assert.ElementsMatch(t, in.SelectedExperienceIDs, res.Input.SelectedExperienceIDs)
	assert.ElementsMatch(t, in.SelectedEducationIDs, res.Input.SelectedEducationIDs)
	assert.ElementsMatch(t, in.SelectedSkillIDs, res.Input.SelectedSkillIDs)
}

func TestApplyToPreservesOmittedCollections(t *testing.T) {
	live, exp, _, _ := liveRecords()
	existing := template.NewInput("Existing")
	existing.SelectedSkillIDs = []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	existing.SelectedEducationIDs = []uuid.UUID{uuid.New()}

	raw := decode(t, `{"selectedExperienceIds":["`+exp.ID.String()+`"],"selectedEducationIds":[]}`)
	res := Reconcile(raw, live, OptionsFor(existing))
	merged := res.ApplyTo(existing)

	assert.Equal(t, "Existing", merged.Name)
	assert.Equal(t, []uuid.UUID{exp.ID}, merged.SelectedExperienceIDs)
	assert.Equal(t, existing.SelectedSkillIDs, merged.SelectedSkillIDs)
	assert.Equal(t, existing.SelectedEducationIDs, merged.SelectedEducationIDs)
}

func TestApplyToOverwritesAddressedCollection(t *testing.T) {
	existing := template.NewInput("Existing")
	existing.SelectedSkillIDs = []uuid.UUID{uuid.New()}

	raw := decode(t, `{"selectedSkillIds":["`+uuid.New().String()+`"]}`)
	res := Reconcile(raw, cv.Records{}, OptionsFor(existing))
	merged := res.ApplyTo(existing)

	assert.Empty(t, merged.SelectedSkillIDs)
	assert.Len(t, res.Warnings, 1)
}
