// Package reconcile turns an arbitrary JSON document into a template input by
// matching the records it references against an owner's live CV records.
//
// Reconciliation never fails on parseable input: fields of the wrong type fall
// back to defaults, references that resolve to nothing are reported as
// warnings, and the rest of the document is still applied.
package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/internal/domain/template"
	"github.com/khoahotran/cv-studio/pkg/jsonx"
)

// Options supplies the values used when the document does not carry them.
// When importing into an existing template these are that template's fields.
type Options struct {
	FallbackName             string
	FallbackDescription      *string
	FallbackIncludeProfile   *bool
	FallbackIncludeLanguages *bool
	FallbackIsDefault        bool
	// Now stamps synthesized names; defaults to time.Now.
	Now func() time.Time
}

type Meta struct {
	HadExperienceSelection bool `json:"hadExperienceSelection"`
	HadEducationSelection  bool `json:"hadEducationSelection"`
	HadSkillSelection      bool `json:"hadSkillSelection"`
	MatchedExperienceCount int  `json:"matchedExperienceCount"`
	MatchedEducationCount  int  `json:"matchedEducationCount"`
	MatchedSkillCount      int  `json:"matchedSkillCount"`
}

type Debug struct {
	UnmatchedExperiences []string `json:"unmatchedExperiences"`
	UnmatchedEducation   []string `json:"unmatchedEducation"`
	UnmatchedSkills      []string `json:"unmatchedSkills"`
}

type Result struct {
	Input    template.Input `json:"input"`
	Warnings []string       `json:"warnings"`
	Meta     Meta           `json:"meta"`
	Debug    Debug          `json:"debug"`
}

// Reconcile recovers a template input from raw, a value produced by decoding
// untrusted JSON, against the owner's current records.
func Reconcile(raw any, current cv.Records, opts Options) Result {
	base, ok := jsonx.AsObject(raw)
	if !ok {
		base = jsonx.Object{}
	}
	section, ok := base.Object("template")
	if !ok {
		section = base
	}

	expSnapshots := snapshots(base, "experiences")
	eduSnapshots := snapshots(base, "education")
	skillSnapshots := snapshots(base, "skills")

	expIDs := idCandidates(section["selectedExperienceIds"], expSnapshots)
	eduIDs := idCandidates(section["selectedEducationIds"], eduSnapshots)
	skillIDs := idCandidates(section["selectedSkillIds"], skillSnapshots)

	exp := experienceKind.match(current.Experiences, expIDs, expSnapshots)
	edu := educationKind.match(current.Education, eduIDs, eduSnapshots)
	skill := skillKind.match(current.Skills, skillIDs, skillSnapshots)

	var warnings []string
	for _, w := range []string{
		experienceKind.summarize(exp.unmatched),
		educationKind.summarize(edu.unmatched),
		skillKind.summarize(skill.unmatched),
	} {
		if w != "" {
			warnings = append(warnings, w)
		}
	}
	if warnings == nil {
		warnings = []string{}
	}

	return Result{
		Input: template.Input{
			Name:                  resolveName(section, opts),
			Description:           resolveDescription(section, opts),
			IncludeProfile:        boolOr(section, "includeProfile", opts.FallbackIncludeProfile, true),
			IncludeLanguages:      boolOr(section, "includeLanguages", opts.FallbackIncludeLanguages, true),
			IsDefault:             boolOr(section, "isDefault", &opts.FallbackIsDefault, false),
			SelectedExperienceIDs: exp.matched,
			SelectedEducationIDs:  edu.matched,
			SelectedSkillIDs:      skill.matched,
		},
		Warnings: warnings,
		Meta: Meta{
			HadExperienceSelection: len(expIDs) > 0,
			HadEducationSelection:  len(eduIDs) > 0,
			HadSkillSelection:      len(skillIDs) > 0,
			MatchedExperienceCount: len(exp.matched),
			MatchedEducationCount:  len(edu.matched),
			MatchedSkillCount:      len(skill.matched),
		},
		Debug: Debug{
			UnmatchedExperiences: exp.unmatched,
			UnmatchedEducation:   edu.unmatched,
			UnmatchedSkills:      skill.unmatched,
		},
	}
}

func snapshots(base jsonx.Object, key string) []jsonx.Object {
	arr, ok := base.Array(key)
	if !ok {
		return nil
	}
	return jsonx.Objects(arr)
}

// idCandidates reads an ID array whose entries are strings or objects with an
// id. When that yields nothing, the snapshot IDs stand in for it.
func idCandidates(value any, snaps []jsonx.Object) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	if arr, ok := jsonx.AsArray(value); ok {
		for _, item := range arr {
			switch v := item.(type) {
			case string:
				add(v)
			default:
				if obj, ok := jsonx.AsObject(v); ok {
					if id, ok := obj.String("id"); ok {
						add(id)
					}
				}
			}
		}
	}
	if len(out) == 0 {
		for _, snap := range snaps {
			if id, ok := snap.String("id"); ok {
				add(id)
			}
		}
	}
	return out
}

func resolveName(section jsonx.Object, opts Options) string {
	if name, ok := section.String("name"); ok {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			return trimmed
		}
	}
	if opts.FallbackName != "" {
		return opts.FallbackName
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	return fmt.Sprintf("Imported Template %s", now().UTC().Format("2006-01-02T15:04:05.000Z"))
}

func resolveDescription(section jsonx.Object, opts Options) string {
	if d, ok := section.String("description"); ok {
		return d
	}
	if opts.FallbackDescription != nil {
		return *opts.FallbackDescription
	}
	return ""
}

func boolOr(section jsonx.Object, key string, fallback *bool, def bool) bool {
	if b, ok := section.Bool(key); ok {
		return b
	}
	if fallback != nil {
		return *fallback
	}
	return def
}

func parseID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
