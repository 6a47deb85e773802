package cv

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"-"`
	SkillName   string    `json:"skillName" validate:"required"`
	Category    string    `json:"category"`
	Proficiency string    `json:"proficiency"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s *Skill) Normalize() {
	s.SkillName = strings.TrimSpace(s.SkillName)
	s.Category = strings.TrimSpace(s.Category)
}

func (s *Skill) Validate() error {
	return validateStruct(s)
}

func SortSkills(items []*Skill) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
}

type SkillRepository interface {
	Save(ctx context.Context, s *Skill) error
	Update(ctx context.Context, s *Skill) error
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*Skill, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Skill, error)
}
