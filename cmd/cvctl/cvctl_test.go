package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	expID   = "6f1b7c1e-8a44-4b53-9d2c-1f5f0a9e3b21"
	skillID = "0d7d0b5a-3c1e-4f7e-9a8b-2b6c4d1e9f10"
)

const recordsJSON = `{
  "profile": {"fullName": "Jane Doe", "title": "Backend Engineer", "email": "jane@example.com"},
  "experiences": [
    {"id": "` + expID + `", "jobTitle": "Engineer", "company": "Acme", "startDate": "2021-04", "isCurrent": true, "roleCategories": "[]"}
  ],
  "education": [],
  "skills": [{"id": "` + skillID + `", "skillName": "Go", "category": "Languages"}]
}`

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	nowFunc = func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { nowFunc = time.Now })

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportReportsWarnings(t *testing.T) {
	records := writeFile(t, "records.json", recordsJSON)
	tpl := writeFile(t, "template.json", `{
  "template": {"name": "Backend", "selectedExperienceIds": ["`+expID+`", "11111111-2222-3333-4444-555555555555"]},
  "experiences": [{"id": "11111111-2222-3333-4444-555555555555", "jobTitle": "Gone", "company": "Nowhere"}]
}`)

	out, stderr, err := run(t, "import", tpl, "--records", records)
	require.NoError(t, err)

	var res struct {
		Input struct {
			Name                  string   `json:"name"`
			SelectedExperienceIDs []string `json:"selectedExperienceIds"`
		} `json:"input"`
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "Backend", res.Input.Name)
	assert.Equal(t, []string{expID}, res.Input.SelectedExperienceIDs)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, stderr, "warning:")
}

func TestImportRequiresRecords(t *testing.T) {
	tpl := writeFile(t, "template.json", `{}`)
	_, _, err := run(t, "import", tpl)
	require.Error(t, err)
}

func TestExportAIThenValidate(t *testing.T) {
	records := writeFile(t, "records.json", recordsJSON)
	dir := t.TempDir()
	aiPath := filepath.Join(dir, "ai.json")

	_, _, err := run(t, "export", "--records", records, "--format", "ai", "--out", aiPath)
	require.NoError(t, err)

	out, _, err := run(t, "validate-ai", aiPath)
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)
}

func TestValidateAIRejectsBrokenDocument(t *testing.T) {
	doc := writeFile(t, "broken.json", `{"metadata": {}, "data": {"experiences": "nope", "education": [], "skills": []}}`)

	out, _, err := run(t, "validate-ai", doc)
	require.ErrorIs(t, err, errInvalidDocument)
	assert.Contains(t, out, "- Missing or invalid metadata")
	assert.Contains(t, out, "- Experiences must be an array")
}

func TestRenderTextAndHTML(t *testing.T) {
	records := writeFile(t, "records.json", recordsJSON)

	out, _, err := run(t, "render", "--records", records)
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe\n")
	assert.Contains(t, out, "Engineer")

	out, _, err = run(t, "render", "--records", records, "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Jane Doe</h1>")
}

func TestRenderThroughTemplate(t *testing.T) {
	records := writeFile(t, "records.json", recordsJSON)
	tpl := writeFile(t, "template.json", `{"template": {"name": "Skills only", "selectedSkillIds": ["`+skillID+`"]}}`)

	out, _, err := run(t, "render", "--records", records, "--template", tpl)
	require.NoError(t, err)
	assert.Contains(t, out, "Go")
	assert.NotContains(t, out, "Acme")
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	records := writeFile(t, "records.json", recordsJSON)
	_, _, err := run(t, "render", "--records", records, "--format", "docx")
	require.Error(t, err)
}
