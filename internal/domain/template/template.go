package template

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
)

// Template is a named selection over an owner's CV records.
type Template struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"-"`
	Input
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input is the full write contract of a template.
type Input struct {
	Name                  string      `json:"name"`
	Description           string      `json:"description"`
	IncludeProfile        bool        `json:"includeProfile"`
	IncludeLanguages      bool        `json:"includeLanguages"`
	IsDefault             bool        `json:"isDefault"`
	SelectedExperienceIDs []uuid.UUID `json:"selectedExperienceIds"`
	SelectedEducationIDs  []uuid.UUID `json:"selectedEducationIds"`
	SelectedSkillIDs      []uuid.UUID `json:"selectedSkillIds"`
}

// NewInput returns an input with the store defaults applied.
func NewInput(name string) Input {
	return Input{
		Name:                  name,
		IncludeProfile:        true,
		IncludeLanguages:      true,
		SelectedExperienceIDs: []uuid.UUID{},
		SelectedEducationIDs:  []uuid.UUID{},
		SelectedSkillIDs:      []uuid.UUID{},
	}
}

func (in *Input) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.SelectedExperienceIDs = Dedupe(in.SelectedExperienceIDs)
	in.SelectedEducationIDs = Dedupe(in.SelectedEducationIDs)
	in.SelectedSkillIDs = Dedupe(in.SelectedSkillIDs)
}

func (in *Input) Validate() error {
	if in.Name == "" {
		return ErrNameRequired
	}
	return nil
}

// Dedupe removes repeated and nil IDs, keeping first occurrences in order.
func Dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Project resolves the template against live records. Selected IDs that no
// longer exist are skipped; the live list order is kept.
func (t *Template) Project(all cv.Records) cv.Records {
	all = all.Sorted()
	out := cv.Records{
		Experiences: pick(all.Experiences, t.SelectedExperienceIDs, func(e *cv.Experience) uuid.UUID { return e.ID }),
		Education:   pick(all.Education, t.SelectedEducationIDs, func(e *cv.Education) uuid.UUID { return e.ID }),
		Skills:      pick(all.Skills, t.SelectedSkillIDs, func(s *cv.Skill) uuid.UUID { return s.ID }),
	}
	if t.IncludeProfile && all.Profile != nil {
		out.Profile = all.Profile
		if !t.IncludeLanguages {
			out.Profile = all.Profile.WithoutLanguages()
		}
	}
	return out
}

func pick[T any](items []*T, selected []uuid.UUID, id func(*T) uuid.UUID) []*T {
	want := make(map[uuid.UUID]struct{}, len(selected))
	for _, s := range selected {
		want[s] = struct{}{}
	}
	out := make([]*T, 0, len(selected))
	for _, item := range items {
		if _, ok := want[id(item)]; ok {
			out = append(out, item)
		}
	}
	return out
}

type Repository interface {
	Save(ctx context.Context, t *Template) error
	Update(ctx context.Context, t *Template) error
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*Template, error)
	FindDefault(ctx context.Context, ownerID uuid.UUID) (*Template, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Template, error)
}
