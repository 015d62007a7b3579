// Package annotation turns categorized spans over a resume into renderable
// segments and applies single suggested edits.
//
// Offsets are zero-based rune indices into one specific text snapshot and
// describe half-open ranges [Start, End).
package annotation

// Category is the closed set of annotation kinds.
type Category string

const (
	CategoryKeywords   Category = "keywords"
	CategoryImpact     Category = "impact"
	CategoryFormat     Category = "format"
	CategoryRedundancy Category = "redundancy"
	CategoryClarity    Category = "clarity"
	CategoryGrammar    Category = "grammar"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryKeywords,
		CategoryImpact,
		CategoryFormat,
		CategoryRedundancy,
		CategoryClarity,
		CategoryGrammar,
	}
}

// Valid reports whether c belongs to the closed enum.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Span is one suggested improvement over a range of the text.
type Span struct {
	Start       int      `json:"start" validate:"gte=0"`
	End         int      `json:"end" validate:"gtefield=Start"`
	Category    Category `json:"category" validate:"required,oneof=keywords impact format redundancy clarity grammar"`
	Message     string   `json:"message"`
	Suggestion  string   `json:"suggestion"`
	Replacement *string  `json:"replacement,omitempty"`
}

// HasReplacement reports whether the span carries a non-empty replacement.
func (s Span) HasReplacement() bool {
	return s.Replacement != nil && *s.Replacement != ""
}

// Segment is a contiguous run of the text. Index points into the sorted span
// list returned by BuildSegments, or is -1 for plain text.
type Segment struct {
	Start     int  `json:"start"`
	End       int  `json:"end"`
	Annotated bool `json:"annotated"`
	Index     int  `json:"index"`
}

// Text returns the part of text covered by the segment. Offsets outside the
// text are clamped.
func (s Segment) Text(text string) string {
	return sliceRunes([]rune(text), s.Start, s.End)
}

func sliceRunes(runes []rune, start, end int) string {
	start = max(0, min(start, len(runes)))
	end = max(0, min(end, len(runes)))
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}
