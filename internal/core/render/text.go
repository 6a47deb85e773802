package render

import (
	"strings"
)

// Text lays the view out as plain lines, section by section.
func (v View) Text() string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	heading := func(s string) {
		if b.Len() > 0 {
			line("")
		}
		line(strings.ToUpper(s))
	}

	if v.Header.Name != "" {
		line(v.Header.Name)
	}
	if v.Header.Title != "" {
		line(v.Header.Title)
	}
	if v.Header.Contact != "" {
		line(v.Header.Contact)
	}

	if v.Summary != "" {
		heading(HeadingSummary)
		line(v.Summary)
	}
	if len(v.CoreStrengths) > 0 {
		heading(HeadingCoreStrengths)
		for _, s := range v.CoreStrengths {
			line("• " + s)
		}
	}
	writeEntries := func(title string, entries []Entry) {
		if len(entries) == 0 {
			return
		}
		heading(title)
		for _, e := range entries {
			line(e.Heading + "    " + e.DateRange)
			if e.Subheading != "" {
				line(e.Subheading)
			}
			if e.Description != "" {
				line(e.Description)
			}
		}
	}
	writeEntries(HeadingExperience, v.Experience)
	writeEntries(HeadingEducation, v.Education)

	if len(v.Skills) > 0 {
		heading(HeadingSkills)
		for _, g := range v.Skills {
			line(g.Line)
		}
	}
	if len(v.Languages) > 0 {
		heading(HeadingLanguages)
		for _, l := range v.Languages {
			line(l)
		}
	}
	return b.String()
}
