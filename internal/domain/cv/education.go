package cv

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Education struct {
	ID                uuid.UUID            `json:"id"`
	OwnerID           uuid.UUID            `json:"-"`
	School            string               `json:"school" validate:"required"`
	Degree            string               `json:"degree"`
	Field             string               `json:"field"`
	Location          string               `json:"location"`
	StartDate         string               `json:"startDate" validate:"required,yearmonth"`
	EndDate           *string              `json:"endDate" validate:"omitempty,yearmonth"`
	IsOngoing         bool                 `json:"isOngoing"`
	Overview          string               `json:"overview"`
	EducationSections EducationSectionList `json:"educationSections"`
	Website           string               `json:"website" validate:"omitempty,url"`
	EQFLevel          string               `json:"eqfLevel"`
	Description       string               `json:"description"`
	Order             int                  `json:"order"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// Normalize applies the write rules: ongoing studies have no end date.
func (e *Education) Normalize() {
	e.School = strings.TrimSpace(e.School)
	e.EndDate = cleanDate(e.EndDate)
	if e.IsOngoing {
		e.EndDate = nil
	}
	if e.EducationSections == nil {
		e.EducationSections = EducationSectionList{}
	}
}

func (e *Education) Validate() error {
	return validateStruct(e)
}

func SortEducation(items []*Education) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].StartDate > items[j].StartDate
	})
}

type EducationRepository interface {
	Save(ctx context.Context, e *Education) error
	Update(ctx context.Context, e *Education) error
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*Education, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Education, error)
}
