package reconcile

import "github.com/khoahotran/cv-studio/internal/domain/template"

// ApplyTo merges the result into an existing template input. A collection's
// selection is replaced only when the document addressed it explicitly or at
// least one of its items matched; otherwise the existing selection is kept.
func (r Result) ApplyTo(existing template.Input) template.Input {
	out := r.Input
	if !r.Meta.HadExperienceSelection && r.Meta.MatchedExperienceCount == 0 {
		out.SelectedExperienceIDs = existing.SelectedExperienceIDs
	}
	if !r.Meta.HadEducationSelection && r.Meta.MatchedEducationCount == 0 {
		out.SelectedEducationIDs = existing.SelectedEducationIDs
	}
	if !r.Meta.HadSkillSelection && r.Meta.MatchedSkillCount == 0 {
		out.SelectedSkillIDs = existing.SelectedSkillIDs
	}
	return out
}

// OptionsFor builds fallbacks from an existing template.
func OptionsFor(existing template.Input) Options {
	desc := existing.Description
	includeProfile := existing.IncludeProfile
	includeLanguages := existing.IncludeLanguages
	return Options{
		FallbackName:             existing.Name,
		FallbackDescription:      &desc,
		FallbackIncludeProfile:   &includeProfile,
		FallbackIncludeLanguages: &includeLanguages,
		FallbackIsDefault:        existing.IsDefault,
	}
}
