// Package aiexport wraps CV records for round-trip editing by an external
// agent and checks what comes back before it is trusted.
package aiexport

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
)

const Version = "1.0"

var instructions = strings.Join([]string{
	"This CV data is formatted for AI modification. Follow the modification guidelines below.",
	"IMPORTANT: Only modify the content values. Do NOT change the structure, field names, or data types.",
	"Do NOT add or remove any fields. Do NOT modify the format of dates (YYYY-MM format) or boolean values.",
	"Do NOT change id, order, createdAt or updatedAt values; they tie each entry back to the stored record.",
}, " ")

var guidelines = Guidelines{
	Profile: "Modify only the text content of: fullName, title, email, phone, location, dateOfBirth, nationality, " +
		"profileSummary, coreStrengths (array items), and languages (language names and proficiency levels). " +
		"Keep all field names and structure intact. Do not change profilePhoto URL format.",
	Experiences: "For each experience, modify only: jobTitle, company, location, overview, and roleCategories items. " +
		"Keep dates in YYYY-MM format unchanged. Keep isCurrent as boolean (true/false). " +
		"For roleCategories, only modify the item text within each category, not the category names or structure.",
	Education: "For each education entry, modify only: school, degree, field, location, overview, and educationSections items. " +
		"Keep dates in YYYY-MM format unchanged. Keep isOngoing as boolean (true/false). " +
		"For educationSections, only modify the item text within each section, not the section names or structure. " +
		"Keep website URL and eqfLevel format unchanged.",
	Skills: "For each skill, modify only: skillName, category, and proficiency. " +
		"Keep the array structure and all field names intact.",
}

type Export struct {
	Metadata               Metadata   `json:"metadata"`
	ModificationGuidelines Guidelines `json:"modificationGuidelines"`
	Data                   Data       `json:"data"`
}

type Metadata struct {
	ExportedAt   string `json:"exportedAt"`
	Version      string `json:"version"`
	Instructions string `json:"instructions"`
}

type Guidelines struct {
	Profile     string `json:"profile"`
	Experiences string `json:"experiences"`
	Education   string `json:"education"`
	Skills      string `json:"skills"`
}

// Data carries the records as stored, identifiers and ordering included, so an
// edited entry still names the record it came from.
type Data struct {
	Profile     *Profile     `json:"profile"`
	Experiences []Experience `json:"experiences"`
	Education   []Education  `json:"education"`
	Skills      []Skill      `json:"skills"`
}

type Profile struct {
	ID             uuid.UUID     `json:"id"`
	FullName       string        `json:"fullName"`
	Title          string        `json:"title"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	Location       string        `json:"location"`
	DateOfBirth    string        `json:"dateOfBirth"`
	Nationality    string        `json:"nationality"`
	ProfilePhoto   string        `json:"profilePhoto"`
	ProfileSummary string        `json:"profileSummary"`
	CoreStrengths  []string      `json:"coreStrengths"`
	Languages      []cv.Language `json:"languages"`
	CreatedAt      time.Time     `json:"createdAt,omitzero"`
	UpdatedAt      time.Time     `json:"updatedAt,omitzero"`
}

type Section struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

type Experience struct {
	ID             uuid.UUID `json:"id"`
	JobTitle       string    `json:"jobTitle"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	StartDate      string    `json:"startDate"`
	EndDate        *string   `json:"endDate"`
	IsCurrent      bool      `json:"isCurrent"`
	Overview       string    `json:"overview"`
	RoleCategories []Section `json:"roleCategories"`
	Description    string    `json:"description"`
	Order          int       `json:"order"`
	CreatedAt      time.Time `json:"createdAt,omitzero"`
	UpdatedAt      time.Time `json:"updatedAt,omitzero"`
}

type Education struct {
	ID                uuid.UUID `json:"id"`
	School            string    `json:"school"`
	Degree            string    `json:"degree"`
	Field             string    `json:"field"`
	Location          string    `json:"location"`
	StartDate         string    `json:"startDate"`
	EndDate           *string   `json:"endDate"`
	IsOngoing         bool      `json:"isOngoing"`
	Overview          string    `json:"overview"`
	EducationSections []Section `json:"educationSections"`
	Website           string    `json:"website"`
	EQFLevel          string    `json:"eqfLevel"`
	Description       string    `json:"description"`
	Order             int       `json:"order"`
	CreatedAt         time.Time `json:"createdAt,omitzero"`
	UpdatedAt         time.Time `json:"updatedAt,omitzero"`
}

type Skill struct {
	ID          uuid.UUID `json:"id"`
	SkillName   string    `json:"skillName"`
	Category    string    `json:"category"`
	Proficiency string    `json:"proficiency"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// Format wraps records with the editing instructions.
func Format(r cv.Records, now time.Time) Export {
	return Export{
		Metadata: Metadata{
			ExportedAt:   now.UTC().Format(time.RFC3339Nano),
			Version:      Version,
			Instructions: instructions,
		},
		ModificationGuidelines: guidelines,
		Data:                   toData(r),
	}
}

func toData(r cv.Records) Data {
	d := Data{
		Experiences: []Experience{},
		Education:   []Education{},
		Skills:      []Skill{},
	}
	if p := r.Profile; p != nil {
		d.Profile = &Profile{
			ID:             p.ID,
			FullName:       p.FullName,
			Title:          p.Title,
			Email:          p.Email,
			Phone:          p.Phone,
			Location:       p.Location,
			DateOfBirth:    p.DateOfBirth,
			Nationality:    p.Nationality,
			ProfilePhoto:   p.ProfilePhoto,
			ProfileSummary: p.ProfileSummary,
			CoreStrengths:  append([]string{}, p.CoreStrengths...),
			Languages:      append([]cv.Language{}, p.Languages...),
			CreatedAt:      p.CreatedAt,
			UpdatedAt:      p.UpdatedAt,
		}
	}
	for _, e := range r.Experiences {
		if e == nil {
			continue
		}
		sections := make([]Section, 0, len(e.RoleCategories))
		for _, rc := range e.RoleCategories {
			sections = append(sections, Section{Name: rc.Category, Items: append([]string{}, rc.Items...)})
		}
		d.Experiences = append(d.Experiences, Experience{
			ID:             e.ID,
			JobTitle:       e.JobTitle,
			Company:        e.Company,
			Location:       e.Location,
			StartDate:      e.StartDate,
			EndDate:        e.EndDate,
			IsCurrent:      e.IsCurrent,
			Overview:       e.Overview,
			RoleCategories: sections,
			Description:    e.Description,
			Order:          e.Order,
			CreatedAt:      e.CreatedAt,
			UpdatedAt:      e.UpdatedAt,
		})
	}
	for _, e := range r.Education {
		if e == nil {
			continue
		}
		sections := make([]Section, 0, len(e.EducationSections))
		for _, s := range e.EducationSections {
			sections = append(sections, Section{Name: s.Title, Items: append([]string{}, s.Items...)})
		}
		d.Education = append(d.Education, Education{
			ID:                e.ID,
			School:            e.School,
			Degree:            e.Degree,
			Field:             e.Field,
			Location:          e.Location,
			StartDate:         e.StartDate,
			EndDate:           e.EndDate,
			IsOngoing:         e.IsOngoing,
			Overview:          e.Overview,
			EducationSections: sections,
			Website:           e.Website,
			EQFLevel:          e.EQFLevel,
			Description:       e.Description,
			Order:             e.Order,
			CreatedAt:         e.CreatedAt,
			UpdatedAt:         e.UpdatedAt,
		})
	}
	for _, s := range r.Skills {
		if s == nil {
			continue
		}
		d.Skills = append(d.Skills, Skill{
			ID:          s.ID,
			SkillName:   s.SkillName,
			Category:    s.Category,
			Proficiency: s.Proficiency,
			Order:       s.Order,
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	return d
}
