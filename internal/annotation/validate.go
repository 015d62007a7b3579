package annotation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes one rejected span.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every problem found in a span list.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid annotations:")
	for _, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf(" %s: %s;", fe.Field, fe.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// Validate checks spans against text: field rules, offsets within the text
// and no overlap once sorted by Start. It returns nil or a *ValidationError.
func Validate(text string, spans []Span) error {
	return check(text, spans, true)
}

func check(text string, spans []Span, overlap bool) error {
	length := utf8.RuneCountInString(text)
	var problems []FieldError

	for i, s := range spans {
		prefix := fmt.Sprintf("[%d]", i)
		if err := validate.Struct(s); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return err
			}
			for _, fe := range verrs {
				problems = append(problems, FieldError{
					Field:   prefix + "." + fe.Field(),
					Message: describe(fe),
				})
			}
		}
		if s.End > length {
			problems = append(problems, FieldError{
				Field:   prefix + ".end",
				Message: fmt.Sprintf("exceeds text length %d", length),
			})
		}
	}

	if overlap {
		ordered := sorted(spans)
		for i := 1; i < len(ordered); i++ {
			if ordered[i].Start < ordered[i-1].End {
				problems = append(problems, FieldError{
					Field: "overlap",
					Message: fmt.Sprintf("span [%d,%d) starts before [%d,%d) ends",
						ordered[i].Start, ordered[i].End, ordered[i-1].Start, ordered[i-1].End),
				})
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Errors: problems}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be >= " + fe.Param()
	case "gtefield":
		return "must not be before start"
	case "oneof":
		return fmt.Sprintf("%q is not one of %s", fe.Value(), fe.Param())
	default:
		return "failed " + fe.Tag()
	}
}

// Clip resolves overlaps by sweeping spans in Start order: spans fully covered
// by an earlier one are dropped, partially overlapping ones are trimmed to
// start where the previous span ends. A trimmed span loses its replacement
// since it no longer lines up with the original range.
func Clip(spans []Span) []Span {
	ordered := sorted(spans)
	out := make([]Span, 0, len(ordered))
	cursor := 0
	for _, s := range ordered {
		if s.Start < cursor {
			if s.End <= cursor {
				continue
			}
			s.Start = cursor
			s.Replacement = nil
		}
		out = append(out, s)
		cursor = max(cursor, s.End)
	}
	return out
}
