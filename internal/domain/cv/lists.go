package cv

import (
	"encoding/json"

	"github.com/khoahotran/cv-studio/pkg/jsonx"
)

// The list fields below reach the service either as native JSON arrays or as
// strings holding an encoded array (older rows and hand-edited files do this).
// Their UnmarshalJSON resolves both forms once, so nothing past the decoding
// boundary ever sees the string variant. Malformed input becomes an empty list.

type StringList []string

func StringListFrom(v any) StringList {
	return StringList(jsonx.Strings(jsonx.List(v)))
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	*l = StringListFrom(decodeLoose(data))
	return nil
}

type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

type LanguageList []Language

func LanguageListFrom(v any) LanguageList {
	out := LanguageList{}
	for _, obj := range jsonx.Objects(jsonx.List(v)) {
		name := obj.FirstString("language", "name")
		if name == "" {
			continue
		}
		out = append(out, Language{Language: name, Proficiency: obj.StringOr("proficiency", "")})
	}
	return out
}

func (l *LanguageList) UnmarshalJSON(data []byte) error {
	*l = LanguageListFrom(decodeLoose(data))
	return nil
}

// RoleCategory groups achievement bullets of one experience.
type RoleCategory struct {
	Category string     `json:"category"`
	Items    StringList `json:"items"`
}

type RoleCategoryList []RoleCategory

func RoleCategoryListFrom(v any) RoleCategoryList {
	out := RoleCategoryList{}
	for _, obj := range jsonx.Objects(jsonx.List(v)) {
		out = append(out, RoleCategory{
			Category: obj.FirstString("category", "name", "title"),
			Items:    StringListFrom(obj["items"]),
		})
	}
	return out
}

func (l *RoleCategoryList) UnmarshalJSON(data []byte) error {
	*l = RoleCategoryListFrom(decodeLoose(data))
	return nil
}

// EducationSection is a titled list of bullets under an education entry.
type EducationSection struct {
	Title string     `json:"title"`
	Items StringList `json:"items"`
}

type EducationSectionList []EducationSection

func EducationSectionListFrom(v any) EducationSectionList {
	out := EducationSectionList{}
	for _, obj := range jsonx.Objects(jsonx.List(v)) {
		out = append(out, EducationSection{
			Title: obj.FirstString("title", "name", "category"),
			Items: StringListFrom(obj["items"]),
		})
	}
	return out
}

func (l *EducationSectionList) UnmarshalJSON(data []byte) error {
	*l = EducationSectionListFrom(decodeLoose(data))
	return nil
}

func decodeLoose(data []byte) any {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return v
}
