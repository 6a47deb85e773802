package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/cv.html.tmpl
var templateFS embed.FS

var documentTemplate = template.Must(template.ParseFS(templateFS, "templates/cv.html.tmpl"))

// RenderError reports a failure to execute the document template.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render CV document: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

type headings struct {
	Summary, CoreStrengths, Experience, Education, Skills, Languages string
}

type documentData struct {
	Title    string
	View     View
	Headings headings
}

// Document renders the view as a standalone A4 HTML page ready for printing.
func Document(v View) ([]byte, error) {
	title := v.Header.Name
	if title == "" {
		title = "CV"
	}
	data := documentData{
		Title: title,
		View:  v,
		Headings: headings{
			Summary:       HeadingSummary,
			CoreStrengths: HeadingCoreStrengths,
			Experience:    HeadingExperience,
			Education:     HeadingEducation,
			Skills:        HeadingSkills,
			Languages:     HeadingLanguages,
		},
	}
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return nil, &RenderError{Err: err}
	}
	return buf.Bytes(), nil
}
