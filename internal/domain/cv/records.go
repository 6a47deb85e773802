package cv

// Records is a set of CV content. Loaded from the store it holds everything an
// owner has; resolved through a template it is that template's projection.
// Lists keep the order they were given in.
type Records struct {
	Profile     *Profile      `json:"profile"`
	Experiences []*Experience `json:"experiences"`
	Education   []*Education  `json:"education"`
	Skills      []*Skill      `json:"skills"`
}

// Sorted returns a copy whose lists follow display order. Nil entries are dropped.
func (r Records) Sorted() Records {
	out := Records{
		Profile:     r.Profile,
		Experiences: compact(r.Experiences),
		Education:   compact(r.Education),
		Skills:      compact(r.Skills),
	}
	SortExperiences(out.Experiences)
	SortEducation(out.Education)
	SortSkills(out.Skills)
	return out
}

// Empty reports whether there is nothing to show at all.
func (r Records) Empty() bool {
	return r.Profile == nil && len(r.Experiences) == 0 && len(r.Education) == 0 && len(r.Skills) == 0
}

func compact[T any](in []*T) []*T {
	out := make([]*T, 0, len(in))
	for _, item := range in {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}
