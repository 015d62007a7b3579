package annotation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spigell/resume-lens/internal/ai"
)

type (
	// ParseError carries the raw reply that could not be turned into spans.
	ParseError = ai.ParseError
	// CallError wraps a failed completion request.
	CallError = ai.CallError
)

// ParseSpans decodes a reply that must be exactly one JSON array of spans.
// Surrounding prose, code fences or trailing content are rejected.
func ParseSpans(raw string) ([]Span, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, &ParseError{Raw: raw, Cause: errors.New("reply is not a JSON array")}
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var spans []Span
	if err := dec.Decode(&spans); err != nil {
		return nil, &ParseError{Raw: raw, Cause: fmt.Errorf("decode annotations: %w", err)}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Raw: raw, Cause: errors.New("unexpected content after JSON array")}
	}
	if spans == nil {
		spans = []Span{}
	}

	return spans, nil
}
