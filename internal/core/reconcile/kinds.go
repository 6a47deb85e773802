package reconcile

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/pkg/jsonx"
)

var experienceKind = kind[*cv.Experience]{
	singular: "experience",
	plural:   "experiences",
	id:       func(e *cv.Experience) uuid.UUID { return e.ID },
	fields: []identityField[*cv.Experience]{
		{keys: []string{"jobTitle", "title"}, live: func(e *cv.Experience) string { return e.JobTitle }, required: true},
		{keys: []string{"company"}, live: func(e *cv.Experience) string { return e.Company }},
		{keys: []string{"startDate"}, live: func(e *cv.Experience) string { return e.StartDate }},
		{keys: []string{"endDate"}, live: func(e *cv.Experience) string { return deref(e.EndDate) }, bothSides: true},
	},
	describe: func(s jsonx.Object) string {
		title := s.FirstString("jobTitle", "title")
		company := s.FirstString("company")
		switch {
		case title != "" && company != "":
			return fmt.Sprintf("%s @ %s", title, company)
		case title != "":
			return title
		case company != "":
			return "Role at " + company
		}
		return "Experience"
	},
}

var educationKind = kind[*cv.Education]{
	singular: "education entry",
	plural:   "education entries",
	id:       func(e *cv.Education) uuid.UUID { return e.ID },
	fields: []identityField[*cv.Education]{
		{keys: []string{"school"}, live: func(e *cv.Education) string { return e.School }, required: true},
		{keys: []string{"degree"}, live: func(e *cv.Education) string { return e.Degree }},
		{keys: []string{"field"}, live: func(e *cv.Education) string { return e.Field }},
		{keys: []string{"startDate"}, live: func(e *cv.Education) string { return e.StartDate }},
	},
	describe: func(s jsonx.Object) string {
		school := s.FirstString("school")
		degree := s.FirstString("degree")
		switch {
		case school != "" && degree != "":
			return fmt.Sprintf("%s - %s", degree, school)
		case school != "":
			return school
		}
		return "Education"
	},
}

var skillKind = kind[*cv.Skill]{
	singular: "skill",
	plural:   "skills",
	id:       func(s *cv.Skill) uuid.UUID { return s.ID },
	fields: []identityField[*cv.Skill]{
		{keys: []string{"skillName", "name"}, live: func(s *cv.Skill) string { return s.SkillName }, required: true},
		{keys: []string{"category"}, live: func(s *cv.Skill) string { return s.Category }},
		{keys: []string{"proficiency"}, live: func(s *cv.Skill) string { return s.Proficiency }},
	},
	describe: func(s jsonx.Object) string {
		name := s.FirstString("skillName", "name")
		if name == "" {
			return "Skill"
		}
		if category := s.FirstString("category"); category != "" {
			return fmt.Sprintf("%s (%s)", name, category)
		}
		return name
	},
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
