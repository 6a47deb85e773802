package render

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleRecords() cv.Records {
	return cv.Records{
		Profile: &cv.Profile{
			FullName:       "Jane Doe",
			Title:          "Staff Engineer",
			Email:          "jane@example.com",
			Location:       "Berlin",
			ProfileSummary: "Builds things.",
			CoreStrengths:  cv.StringList{"Leadership", " "},
			Languages:      cv.LanguageList{{Language: "English", Proficiency: "Native"}},
		},
		Experiences: []*cv.Experience{
			{JobTitle: "Lead", Company: "Acme", Location: "Remote", StartDate: "2021-02", IsCurrent: true, Description: "Line one\nLine two",
				RoleCategories: cv.RoleCategoryList{{Category: "Delivery", Items: cv.StringList{"Shipped v2"}}}},
			{JobTitle: "Dev", Company: "Initech", StartDate: "2018-01", EndDate: strPtr("2021-01")},
			{JobTitle: "Intern", Company: "Globex", StartDate: "2017-06"},
		},
		Education: []*cv.Education{
			{School: "TU Berlin", Degree: "MSc", Field: "CS", Location: "Berlin", StartDate: "2015-10", IsOngoing: true},
			{School: "Night School", StartDate: "2012-01", EndDate: strPtr("2013-01")},
		},
		Skills: []*cv.Skill{
			{SkillName: "Excel"},
			{SkillName: "SQL", Category: "Data", Proficiency: "Advanced"},
			{SkillName: "Go", Category: "Data"},
		},
	}
}

func TestBuildHeader(t *testing.T) {
	v := Build(sampleRecords())
	assert.Equal(t, "Jane Doe", v.Header.Name)
	assert.Equal(t, "Staff Engineer", v.Header.Title)
	assert.Equal(t, "Berlin | jane@example.com", v.Header.Contact)
	assert.Equal(t, []string{"Leadership"}, v.CoreStrengths)
	assert.Equal(t, []string{"English - Native"}, v.Languages)
}

func TestBuildEntries(t *testing.T) {
	v := Build(sampleRecords())
	require.Len(t, v.Experience, 3)
	assert.Equal(t, "2021-02 - Present", v.Experience[0].DateRange)
	assert.Equal(t, "Acme | Remote", v.Experience[0].Subheading)
	assert.Equal(t, "Line one\nLine two", v.Experience[0].Description)
	assert.Equal(t, "2018-01 - 2021-01", v.Experience[1].DateRange)
	assert.Equal(t, "2017-06 - ", v.Experience[2].DateRange)
	assert.Equal(t, "Intern", v.Experience[2].Heading, "caller order is kept")

	require.Len(t, v.Education, 2)
	assert.Equal(t, "2015-10 - Ongoing", v.Education[0].DateRange)
	assert.Equal(t, "MSc in CS | Berlin", v.Education[0].Subheading)
	assert.Empty(t, v.Education[1].Subheading)
}

func TestBuildGroupsSkillsInFirstSeenOrder(t *testing.T) {
	v := Build(sampleRecords())
	require.Len(t, v.Skills, 2)
	assert.Equal(t, "Other: Excel", v.Skills[0].Line)
	assert.Equal(t, "Data: SQL (Advanced), Go", v.Skills[1].Line)
}

func TestBuildWithoutProfileNeverFails(t *testing.T) {
	v := Build(cv.Records{Experiences: []*cv.Experience{nil}})
	assert.Empty(t, v.Header.Name)
	assert.Empty(t, v.Experience)
	assert.Empty(t, v.Languages)

	html, err := Document(v)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, "CV", doc.Find("title").Text())
	assert.Equal(t, 0, doc.Find("section").Length())
}

func TestDocumentMatchesView(t *testing.T) {
	v := Build(sampleRecords())
	html, err := Document(v)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", doc.Find("header h1").Text())
	assert.Equal(t, v.Header.Contact, doc.Find("header .contact").Text())

	var headings []string
	doc.Find("section h2").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, s.Text())
	})
	assert.Equal(t, []string{HeadingSummary, HeadingCoreStrengths, HeadingExperience, HeadingEducation, HeadingSkills, HeadingLanguages}, headings)

	var dates []string
	doc.Find("#experience .dates").Each(func(_ int, s *goquery.Selection) {
		dates = append(dates, s.Text())
	})
	assert.Equal(t, []string{"2021-02 - Present", "2018-01 - 2021-01", "2017-06 - "}, dates)

	assert.Equal(t, "Line one\nLine two", doc.Find("#experience .desc").First().Text())
	assert.Equal(t, "Data: SQL (Advanced), Go", doc.Find("#skills .skill-line").Eq(1).Text())
	assert.Contains(t, string(html), "size: A4")
}

func TestDocumentEscapesContent(t *testing.T) {
	r := cv.Records{Profile: &cv.Profile{FullName: "<script>alert(1)</script>"}}
	html, err := Document(Build(r))
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>alert(1)</script>")
}

func TestText(t *testing.T) {
	out := Build(sampleRecords()).Text()
	assert.Contains(t, out, "Jane Doe\nStaff Engineer\nBerlin | jane@example.com\n")
	assert.Contains(t, out, "\nSKILLS\nOther: Excel\nData: SQL (Advanced), Go\n")
	assert.Contains(t, out, "\nLANGUAGES\nEnglish - Native\n")
}

func TestEntryLayoutIsTitleCompanyDescription(t *testing.T) {
	r := cv.Records{Experiences: []*cv.Experience{{
		JobTitle: "Eng", Company: "Acme", StartDate: "2020-01", IsCurrent: true, Description: "Did things",
		RoleCategories: cv.RoleCategoryList{{Category: "Leadership", Items: cv.StringList{"Led team"}}},
	}}}
	v := Build(r)

	assert.Equal(t, "EXPERIENCE\nEng    2020-01 - Present\nAcme\nDid things\n", v.Text())

	html, err := Document(v)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	require.NoError(t, err)
	var classes []string
	doc.Find("#experience .entry").Children().Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		classes = append(classes, class)
	})
	assert.Equal(t, []string{"line1", "line2", "desc"}, classes)
	assert.NotContains(t, string(html), "Led team")
}

func TestTextWithoutNameStartsAtFirstSection(t *testing.T) {
	r := cv.Records{Profile: &cv.Profile{ProfileSummary: "Builds things."}}
	assert.Equal(t, "PROFESSIONAL SUMMARY\nBuilds things.\n", Build(r).Text())

	assert.Empty(t, Build(cv.Records{}).Text())
}
