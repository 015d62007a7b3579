package annotation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWellFormedSpans(t *testing.T) {
	spans := []Span{
		{Start: 4, End: 8, Category: CategoryClarity},
		{Start: 0, End: 4, Category: CategoryImpact},
	}
	require.NoError(t, Validate("0123456789", spans))
	require.NoError(t, Validate("", nil))
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		spans []Span
		field string
	}{
		{
			name:  "negative start",
			spans: []Span{{Start: -1, End: 2, Category: CategoryKeywords}},
			field: "[0].start",
		},
		{
			name:  "inverted",
			spans: []Span{{Start: 5, End: 3, Category: CategoryGrammar}},
			field: "[0].end",
		},
		{
			name:  "unknown category",
			spans: []Span{{Start: 0, End: 2, Category: "style"}},
			field: "[0].category",
		},
		{
			name:  "missing category",
			spans: []Span{{Start: 0, End: 2}},
			field: "[0].category",
		},
		{
			name:  "past the end",
			spans: []Span{{Start: 8, End: 12, Category: CategoryFormat}},
			field: "[0].end",
		},
		{
			name: "overlap",
			spans: []Span{
				{Start: 0, End: 5, Category: CategoryImpact},
				{Start: 3, End: 8, Category: CategoryFormat},
			},
			field: "overlap",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate("0123456789", tt.spans)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.NotEmpty(t, verr.Errors)
			assert.Equal(t, tt.field, verr.Errors[0].Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestClip(t *testing.T) {
	spans := []Span{
		{Start: 3, End: 8, Category: CategoryFormat, Replacement: strPtr("y")},
		{Start: 0, End: 5, Category: CategoryImpact, Replacement: strPtr("x")},
		{Start: 2, End: 4, Category: CategoryGrammar},
		{Start: 10, End: 12, Category: CategoryClarity},
	}

	clipped := Clip(spans)
	require.Len(t, clipped, 3)

	assert.Equal(t, 0, clipped[0].Start)
	assert.Equal(t, 5, clipped[0].End)
	assert.Equal(t, "x", *clipped[0].Replacement)

	assert.Equal(t, 5, clipped[1].Start)
	assert.Equal(t, 8, clipped[1].End)
	assert.Nil(t, clipped[1].Replacement)

	assert.Equal(t, 10, clipped[2].Start)

	require.NoError(t, Validate("0123456789ab", clipped))
	assert.Equal(t, 3, spans[0].Start)
	assert.NotNil(t, spans[0].Replacement)
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, Category("style").Valid())
}
