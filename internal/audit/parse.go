package audit

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
})

// FieldError represents a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists the schema violations of a reply.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("report does not match schema:")
	for i, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf(" %d. %s: %s;", i+1, fe.Field, fe.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// ParseReport accepts exactly one JSON object that satisfies the report schema.
// Any other reply, including fenced or prose-wrapped JSON, is a *ParseError
// holding the raw text.
func ParseReport(raw string) (*Report, error) {
	doc, err := decodeObject(raw)
	if err != nil {
		return nil, &ParseError{Raw: raw, Cause: err}
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load report schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, &ParseError{Raw: raw, Cause: err}
	}
	if !result.Valid() {
		verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
		}
		return nil, &ParseError{Raw: raw, Cause: verr}
	}

	var report Report
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		ErrorUnused: true,
		Result:      &report,
	})
	if err != nil {
		return nil, fmt.Errorf("create report decoder: %w", err)
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, &ParseError{Raw: raw, Cause: fmt.Errorf("decode report: %w", err)}
	}

	return &report, nil
}

func decodeObject(raw string) (map[string]any, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, errors.New("reply is not a JSON object")
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected content after JSON object")
	}

	return doc, nil
}
