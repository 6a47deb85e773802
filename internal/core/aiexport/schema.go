package aiexport

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/ai_export.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	})
	return schema, schemaErr
}

// FieldError is one schema violation at a document path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CheckSchema validates doc against the strict export schema: no added fields,
// string lists only, dates as YYYY-MM.
func CheckSchema(doc any) ([]FieldError, error) {
	s, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("load AI export schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate AI export: %w", err)
	}
	out := make([]FieldError, 0, len(res.Errors()))
	for _, desc := range res.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		out = append(out, FieldError{Field: field, Message: desc.Description()})
	}
	return out, nil
}

// ValidateStrict runs Validate and, when the structure holds, the schema check.
// Schema findings are appended to the errors as "field: message".
func ValidateStrict(doc any) (Result, error) {
	res := Validate(doc)
	if !res.Valid {
		return res, nil
	}
	findings, err := CheckSchema(doc)
	if err != nil {
		return Result{}, err
	}
	for _, f := range findings {
		res.Errors = append(res.Errors, f.String())
	}
	res.Valid = len(res.Errors) == 0
	return res, nil
}
