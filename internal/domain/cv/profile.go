package cv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile is the single personal header of an owner's CV.
type Profile struct {
	ID             uuid.UUID    `json:"id"`
	OwnerID        uuid.UUID    `json:"-"`
	FullName       string       `json:"fullName" validate:"required"`
	Title          string       `json:"title"`
	Email          string       `json:"email" validate:"omitempty,email"`
	Phone          string       `json:"phone"`
	Location       string       `json:"location"`
	DateOfBirth    string       `json:"dateOfBirth"`
	Nationality    string       `json:"nationality"`
	ProfilePhoto   string       `json:"profilePhoto"`
	ProfileSummary string       `json:"profileSummary"`
	CoreStrengths  StringList   `json:"coreStrengths"`
	Languages      LanguageList `json:"languages"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func (p *Profile) Normalize() {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.TrimSpace(p.Email)
	if p.CoreStrengths == nil {
		p.CoreStrengths = StringList{}
	}
	if p.Languages == nil {
		p.Languages = LanguageList{}
	}
}

func (p *Profile) Validate() error {
	return validateStruct(p)
}

// WithoutLanguages returns a copy whose language list is cleared.
func (p *Profile) WithoutLanguages() *Profile {
	cp := *p
	cp.Languages = LanguageList{}
	return &cp
}

type ProfileRepository interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) error
}
