// Package export builds the downloadable JSON documents and file names of
// CV exports.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/internal/domain/template"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypePDF  = "application/pdf"

	dateLayout   = "2006-01-02"
	fallbackSlug = "cv-template"
)

// File is a finished export ready to be downloaded.
type File struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

// TemplateSection is the template as written into an export.
type TemplateSection struct {
	ID uuid.UUID `json:"id"`
	template.Input
}

// Document is the JSON export. Re-importing it against the records it was
// built from reproduces the template's selection without warnings.
type Document struct {
	Template    *TemplateSection `json:"template,omitempty"`
	Profile     *cv.Profile      `json:"profile"`
	Experiences []*cv.Experience `json:"experiences"`
	Education   []*cv.Education  `json:"education"`
	Skills      []*cv.Skill      `json:"skills"`
	ExportedAt  time.Time        `json:"exportedAt"`
}

// TemplateDocument exports t together with its projection. The selection
// written out is the one that resolved, so stale IDs are not carried along.
func TemplateDocument(t *template.Template, projection cv.Records, now time.Time) Document {
	section := &TemplateSection{ID: t.ID, Input: t.Input}
	section.SelectedExperienceIDs = ids(projection.Experiences, func(e *cv.Experience) uuid.UUID { return e.ID })
	section.SelectedEducationIDs = ids(projection.Education, func(e *cv.Education) uuid.UUID { return e.ID })
	section.SelectedSkillIDs = ids(projection.Skills, func(s *cv.Skill) uuid.UUID { return s.ID })

	doc := FullDocument(projection, now)
	doc.Template = section
	return doc
}

// FullDocument exports every record given.
func FullDocument(records cv.Records, now time.Time) Document {
	return Document{
		Profile:     records.Profile,
		Experiences: nonNil(records.Experiences),
		Education:   nonNil(records.Education),
		Skills:      nonNil(records.Skills),
		ExportedAt:  now.UTC(),
	}
}

// JSONFile encodes v with indentation under name.
func JSONFile(name string, v any) (*File, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return &File{Name: name, ContentType: ContentTypeJSON, Data: data}, nil
}

func TemplateFileName(templateName string, now time.Time) string {
	return fmt.Sprintf("%s-%s.json", Slug(templateName), isoDate(now))
}

func FullFileName(now time.Time) string {
	return fmt.Sprintf("cv-export-%s.json", isoDate(now))
}

func AIFileName(now time.Time) string {
	return fmt.Sprintf("cv-ai-export-%s.json", isoDate(now))
}

// PDFFileName names a printed CV after its subject, or "CV" when unnamed.
func PDFFileName(fullName string, now time.Time) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == '"':
			return '-'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(fullName))
	if name == "" {
		name = "CV"
	}
	return fmt.Sprintf("%s-%s.pdf", name, isoDate(now))
}

// Slug lowercases s and joins its ASCII letter and digit runs with hyphens.
func Slug(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}

func isoDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func ids[T any](items []*T, id func(*T) uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, id(item))
		}
	}
	return out
}

func nonNil[T any](items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}
