package annotation

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

var (
	// ErrNoReplacement is returned when a span has no replacement text to apply.
	ErrNoReplacement = errors.New("annotation has no replacement")
	// ErrOutOfRange is returned when span offsets do not fit the text.
	ErrOutOfRange = errors.New("annotation offsets out of range")
)

// sorted returns a copy of spans ordered by Start. Equal starts keep their
// original relative order.
func sorted(spans []Span) []Span {
	out := make([]Span, len(spans))
	copy(out, spans)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// BuildSegments splits text into plain and annotated segments. It returns the
// segments together with the sorted copy of spans that Segment.Index refers to;
// the caller's slice is left untouched.
//
// Spans are trusted as given: overlapping input produces overlapping segments.
// Use Validate or Clip beforehand when the producer cannot be trusted.
func BuildSegments(text string, spans []Span) ([]Segment, []Span) {
	ordered := sorted(spans)
	length := utf8.RuneCountInString(text)

	segments := make([]Segment, 0, 2*len(ordered)+1)
	cursor := 0
	for i, s := range ordered {
		if s.Start > cursor {
			segments = append(segments, Segment{Start: cursor, End: s.Start, Index: -1})
		}
		segments = append(segments, Segment{Start: s.Start, End: s.End, Annotated: true, Index: i})
		cursor = s.End
	}
	if cursor < length {
		segments = append(segments, Segment{Start: cursor, End: length, Index: -1})
	}

	return segments, ordered
}

// ApplyReplacement splices the span's replacement into text. Offsets of any
// other span over the same text are stale afterwards.
func ApplyReplacement(text string, s Span) (string, error) {
	if !s.HasReplacement() {
		return "", ErrNoReplacement
	}

	runes := []rune(text)
	if s.Start < 0 || s.End < s.Start || s.End > len(runes) {
		return "", fmt.Errorf("%w: [%d,%d) over %d characters", ErrOutOfRange, s.Start, s.End, len(runes))
	}

	return string(runes[:s.Start]) + *s.Replacement + string(runes[s.End:]), nil
}
