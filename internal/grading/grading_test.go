package grading

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeEmpty(t *testing.T) {
	res := Grade("")

	assert.Equal(t, ScoreBreakdown{
		ATSCompatibility:    70,
		KeywordDensity:      20,
		Formatting:          5,
		ExperienceHighlight: 25,
		SkillsRelevance:     0,
		Overall:             24,
	}, res.Breakdown)
	assert.Len(t, res.Suggestions, 5)
}

func TestGradeAdversarialBounds(t *testing.T) {
	inputs := []string{
		strings.Repeat("!", 10000),
		strings.Repeat("•", 5000),
		strings.Repeat("- \n", 3000),
		strings.Repeat("&nbsp; NASA http:// •x ", 400),
		strings.Repeat("python java sql docker aws ", 500),
	}

	for _, in := range inputs {
		b := Grade(in).Breakdown
		for name, v := range map[string]int{
			"ats":        b.ATSCompatibility,
			"density":    b.KeywordDensity,
			"formatting": b.Formatting,
			"experience": b.ExperienceHighlight,
			"skills":     b.SkillsRelevance,
			"overall":    b.Overall,
		} {
			assert.GreaterOrEqual(t, v, 0, name)
			assert.LessOrEqual(t, v, 100, name)
		}
	}
}

func TestATSCompatibility(t *testing.T) {
	long := strings.Repeat("a ", 150)

	tests := []struct {
		name   string
		input  string
		expect int
	}{
		{name: "empty is short", input: "", expect: 70},
		{name: "clean", input: long, expect: 100},
		{name: "html entity", input: long + "&amp;", expect: 80},
		{name: "bullet without space", input: long + "•item", expect: 90},
		{name: "bullet with space somewhere", input: long + "•item • other", expect: 100},
		{name: "all caps word", input: long + "NASA", expect: 85},
		{name: "link", input: long + "https://example.com", expect: 90},
		{name: "too long", input: strings.Repeat("a", 2001), expect: 90},
		{name: "everything", input: "&nbsp; •x NASA http://", expect: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ATSCompatibility(tt.input))
		})
	}
}

func TestKeywordDensity(t *testing.T) {
	filler := func(n int) string { return strings.Repeat("word ", n) }

	assert.Equal(t, 20, KeywordDensity("developed python"))
	assert.Equal(t, 0, KeywordDensity(filler(50)))
	assert.Equal(t, 40, KeywordDensity("Developed Python "+filler(48)))

	saturated := "javascript python react node sql api database cloud aws docker " + filler(45)
	assert.Equal(t, 100, KeywordDensity(saturated))
}

func TestFormatting(t *testing.T) {
	sections := "Experience Education Skills Summary Objective"

	assert.Equal(t, 5, Formatting(""))
	assert.Equal(t, 100, Formatting(sections+"\n- item\n• item"))
	assert.Equal(t, 90, Formatting(sections+"\n  - indented\n-nospace"))
	assert.Equal(t, 80, Formatting(sections))
	assert.Equal(t, 40, Formatting("experience\n* item"))
}

func TestExperienceHighlight(t *testing.T) {
	assert.Equal(t, 25, ExperienceHighlight(""))
	assert.Equal(t, 100, ExperienceHighlight("Increased revenue 30% and cut costs by $200 over 3 years in 2021"))
	assert.Equal(t, 50, ExperienceHighlight("Managed a team"))
	assert.Equal(t, 70, ExperienceHighlight("Led 2 teams from 2019 to 2021"))
}

func TestSkillsRelevance(t *testing.T) {
	assert.Equal(t, 0, SkillsRelevance("Go and Rust"))
	assert.Equal(t, 40, SkillsRelevance("Python, Java, JavaScript, React"))
	assert.Equal(t, 20, SkillsRelevance("problem-solving and problem solving"))
	assert.Equal(t, 100, SkillsRelevance(strings.Repeat("Docker Kubernetes Git ", 4)))
}

func TestSuggest(t *testing.T) {
	passing := ScoreBreakdown{
		ATSCompatibility:    80,
		KeywordDensity:      60,
		Formatting:          70,
		ExperienceHighlight: 70,
		SkillsRelevance:     60,
	}
	assert.Empty(t, Suggest(passing))

	weakFormatting := passing
	weakFormatting.Formatting = 69
	got := Suggest(weakFormatting)
	require.Len(t, got, 1)
	assert.Equal(t, "Formatting", got[0].Category)
	assert.Equal(t, ImpactMedium, got[0].Impact)

	all := Suggest(ScoreBreakdown{})
	require.Len(t, all, 5)
	categories := make([]string, 0, len(all))
	for _, s := range all {
		categories = append(categories, s.Category)
	}
	assert.Equal(t, []string{"ATS Compatibility", "Keywords", "Formatting", "Experience", "Skills"}, categories)
}

func TestCompareBest(t *testing.T) {
	best, improved := CompareBest(0, 42)
	assert.Equal(t, 42, best)
	assert.True(t, improved)

	best, improved = CompareBest(42, 42)
	assert.Equal(t, 42, best)
	assert.False(t, improved)

	best, improved = CompareBest(80, 10)
	assert.Equal(t, 80, best)
	assert.False(t, improved)
}
