package aiexport

import (
	"fmt"
	"regexp"

	"github.com/khoahotran/cv-studio/pkg/jsonx"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate structurally checks a document returned by an editor and reports
// every violation found. It guards the fields downstream code relies on and
// does not re-check record invariants.
func Validate(doc any) Result {
	var errs []string
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	root, _ := jsonx.AsObject(doc)
	meta, ok := root.Object("metadata")
	if !ok || !jsonx.Truthy(meta["exportedAt"]) {
		fail("Missing or invalid metadata")
	}

	data, ok := root.Object("data")
	if !ok {
		fail("Missing data object")
		return result(errs)
	}

	if profile, ok := data.Object("profile"); ok {
		if _, ok := profile.String("fullName"); !ok {
			fail("Profile fullName must be a string")
		}
		if v := profile["coreStrengths"]; jsonx.Truthy(v) && !isArray(v) {
			fail("Profile coreStrengths must be an array")
		}
	}

	if items, ok := data.Array("experiences"); !ok {
		fail("Experiences must be an array")
	} else {
		for i, item := range items {
			exp, _ := jsonx.AsObject(item)
			if _, ok := exp.String("jobTitle"); !ok {
				fail("Experience %d: jobTitle must be a string", i)
			}
			if _, ok := exp.String("company"); !ok {
				fail("Experience %d: company must be a string", i)
			}
			if _, ok := exp.Bool("isCurrent"); !ok {
				fail("Experience %d: isCurrent must be a boolean", i)
			}
			if !dateOK(exp["startDate"]) {
				fail("Experience %d: startDate must be in YYYY-MM format", i)
			}
			if v := exp["roleCategories"]; jsonx.Truthy(v) && !isArray(v) {
				fail("Experience %d: roleCategories must be an array", i)
			}
		}
	}

	if items, ok := data.Array("education"); !ok {
		fail("Education must be an array")
	} else {
		for i, item := range items {
			edu, _ := jsonx.AsObject(item)
			if _, ok := edu.String("school"); !ok {
				fail("Education %d: school must be a string", i)
			}
			if _, ok := edu.Bool("isOngoing"); !ok {
				fail("Education %d: isOngoing must be a boolean", i)
			}
			if !dateOK(edu["startDate"]) {
				fail("Education %d: startDate must be in YYYY-MM format", i)
			}
			if v := edu["educationSections"]; jsonx.Truthy(v) && !isArray(v) {
				fail("Education %d: educationSections must be an array", i)
			}
		}
	}

	if items, ok := data.Array("skills"); !ok {
		fail("Skills must be an array")
	} else {
		for i, item := range items {
			skill, _ := jsonx.AsObject(item)
			if _, ok := skill.String("skillName"); !ok {
				fail("Skill %d: skillName must be a string", i)
			}
		}
	}

	return result(errs)
}

// dateOK accepts an absent date or a YYYY-MM string.
func dateOK(v any) bool {
	if !jsonx.Truthy(v) {
		return true
	}
	s, ok := v.(string)
	return ok && datePattern.MatchString(s)
}

func isArray(v any) bool {
	_, ok := jsonx.AsArray(v)
	return ok
}

func result(errs []string) Result {
	if errs == nil {
		errs = []string{}
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}
