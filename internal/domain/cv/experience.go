package cv

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Experience struct {
	ID             uuid.UUID        `json:"id"`
	OwnerID        uuid.UUID        `json:"-"`
	JobTitle       string           `json:"jobTitle" validate:"required"`
	Company        string           `json:"company" validate:"required"`
	Location       string           `json:"location"`
	StartDate      string           `json:"startDate" validate:"required,yearmonth"`
	EndDate        *string          `json:"endDate" validate:"omitempty,yearmonth"`
	IsCurrent      bool             `json:"isCurrent"`
	Overview       string           `json:"overview"`
	RoleCategories RoleCategoryList `json:"roleCategories"`
	Description    string           `json:"description"`
	Order          int              `json:"order"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Normalize applies the write rules: a current role has no end date.
func (e *Experience) Normalize() {
	e.JobTitle = strings.TrimSpace(e.JobTitle)
	e.Company = strings.TrimSpace(e.Company)
	e.EndDate = cleanDate(e.EndDate)
	if e.IsCurrent {
		e.EndDate = nil
	}
	if e.RoleCategories == nil {
		e.RoleCategories = RoleCategoryList{}
	}
}

func (e *Experience) Validate() error {
	return validateStruct(e)
}

// SortExperiences orders by display order, then most recent start first.
func SortExperiences(items []*Experience) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].StartDate > items[j].StartDate
	})
}

type ExperienceRepository interface {
	Save(ctx context.Context, e *Experience) error
	Update(ctx context.Context, e *Experience) error
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*Experience, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Experience, error)
}

func cleanDate(d *string) *string {
	if d == nil {
		return nil
	}
	v := strings.TrimSpace(*d)
	if v == "" {
		return nil
	}
	return &v
}
