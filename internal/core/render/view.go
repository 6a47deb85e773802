// Package render turns a resolved set of CV records into the view model shown
// in the preview and printed into the A4 document. Both outputs are produced
// from the same View so their formatting cannot drift apart.
package render

import (
	"fmt"
	"strings"

	"github.com/khoahotran/cv-studio/internal/domain/cv"
)

const (
	HeadingSummary       = "Professional Summary"
	HeadingCoreStrengths = "Core Strengths"
	HeadingExperience    = "Experience"
	HeadingEducation     = "Education"
	HeadingSkills        = "Skills"
	HeadingLanguages     = "Languages"

	defaultSkillCategory = "Other"
)

type View struct {
	Header        Header       `json:"header"`
	Summary       string       `json:"summary,omitempty"`
	CoreStrengths []string     `json:"coreStrengths,omitempty"`
	Experience    []Entry      `json:"experience,omitempty"`
	Education     []Entry      `json:"education,omitempty"`
	Skills        []SkillGroup `json:"skills,omitempty"`
	Languages     []string     `json:"languages,omitempty"`
}

type Header struct {
	Name    string `json:"name"`
	Title   string `json:"title,omitempty"`
	Contact string `json:"contact,omitempty"`
	Photo   string `json:"photo,omitempty"`
}

// Entry is one experience or education item, laid out as heading and dates,
// then subheading, then description. Role categories and education sections
// are not printed.
type Entry struct {
	Heading     string `json:"heading"`
	DateRange   string `json:"dateRange"`
	Subheading  string `json:"subheading,omitempty"`
	Description string `json:"description,omitempty"`
}

type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
	Line     string   `json:"line"`
}

// Build derives the view. Records are shown in the order given; nil entries
// are skipped and absent fields are simply left out.
func Build(r cv.Records) View {
	var v View
	if p := r.Profile; p != nil {
		v.Header = Header{
			Name:    strings.TrimSpace(p.FullName),
			Title:   strings.TrimSpace(p.Title),
			Contact: joinPresent(" | ", p.Location, p.Phone, p.Email),
			Photo:   p.ProfilePhoto,
		}
		v.Summary = strings.TrimSpace(p.ProfileSummary)
		v.CoreStrengths = nonBlank(p.CoreStrengths)
		for _, l := range p.Languages {
			if strings.TrimSpace(l.Language) == "" {
				continue
			}
			v.Languages = append(v.Languages, fmt.Sprintf("%s - %s", l.Language, l.Proficiency))
		}
	}

	for _, e := range r.Experiences {
		if e == nil {
			continue
		}
		v.Experience = append(v.Experience, Entry{
			Heading:     e.JobTitle,
			DateRange:   dateRange(e.StartDate, e.EndDate, e.IsCurrent, "Present"),
			Subheading:  joinPresent(" | ", e.Company, e.Location),
			Description: e.Description,
		})
	}

	for _, e := range r.Education {
		if e == nil {
			continue
		}
		v.Education = append(v.Education, Entry{
			Heading:     e.School,
			DateRange:   dateRange(e.StartDate, e.EndDate, e.IsOngoing, "Ongoing"),
			Subheading:  joinPresent(" | ", degreeLine(e.Degree, e.Field), e.Location),
			Description: e.Description,
		})
	}

	v.Skills = groupSkills(r.Skills)
	return v
}

func dateRange(start string, end *string, open bool, openLabel string) string {
	if open {
		return fmt.Sprintf("%s - %s", start, openLabel)
	}
	finish := ""
	if end != nil {
		finish = *end
	}
	return fmt.Sprintf("%s - %s", start, finish)
}

func degreeLine(degree, field string) string {
	degree, field = strings.TrimSpace(degree), strings.TrimSpace(field)
	switch {
	case degree != "" && field != "":
		return degree + " in " + field
	case degree != "":
		return degree
	}
	return field
}

func groupSkills(skills []*cv.Skill) []SkillGroup {
	var groups []SkillGroup
	index := map[string]int{}
	for _, s := range skills {
		if s == nil || strings.TrimSpace(s.SkillName) == "" {
			continue
		}
		category := strings.TrimSpace(s.Category)
		if category == "" {
			category = defaultSkillCategory
		}
		item := s.SkillName
		if p := strings.TrimSpace(s.Proficiency); p != "" {
			item = fmt.Sprintf("%s (%s)", s.SkillName, p)
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, SkillGroup{Category: category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	for i := range groups {
		groups[i].Line = fmt.Sprintf("%s: %s", groups[i].Category, strings.Join(groups[i].Items, ", "))
	}
	return groups
}

func joinPresent(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func nonBlank(items []string) []string {
	var out []string
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
