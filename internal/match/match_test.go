package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-lens/internal/job"
	"github.com/spigell/resume-lens/internal/keywords"
)

const sampleResume = "I have 5 years of experience with JavaScript and React. • Built scalable APIs. Education: BS Computer Science."

func samplePosting() job.Posting {
	return job.Posting{
		Title:        "",
		Description:  "Looking for a javascript react apis engineer",
		Requirements: []string{"javascript", "react", "apis"},
	}
}

func TestComputeScenario(t *testing.T) {
	res := Compute(sampleResume, samplePosting())

	assert.Equal(t, []string{"javascript", "react", "apis"}, res.MatchedKeywords)
	assert.Equal(t, []string{"looking", "engineer"}, res.MissingKeywords)
	assert.Equal(t, 60, res.KeywordsMatchPercent)
	// experience + education only: the bullet is mid-line and no "skill" appears.
	assert.Equal(t, 50, res.ATSCompatibilityPercent)
	assert.Equal(t, 57, res.OverallMatchPercent)
	assert.Equal(t, res.MissingKeywords, res.RecommendedKeywords)
}

func TestComputeAllSignals(t *testing.T) {
	resume := "Summary\nExperience\n• Shipped Go services\nEducation\nSkills: go, sql"
	p := job.Posting{Requirements: []string{"go", "sql"}}

	res := Compute(resume, p)
	assert.Equal(t, 100, res.ATSCompatibilityPercent)
	assert.Equal(t, 100, res.KeywordsMatchPercent)
	assert.Equal(t, 100, res.OverallMatchPercent)
	assert.Empty(t, res.MissingKeywords)
	assert.Empty(t, res.RecommendedKeywords)
}

func TestComputeEmptyResume(t *testing.T) {
	res := Compute("", samplePosting())

	assert.Equal(t, 0, res.KeywordsMatchPercent)
	assert.Equal(t, 0, res.ATSCompatibilityPercent)
	assert.Empty(t, res.MatchedKeywords)
	assert.Len(t, res.MissingKeywords, 5)
}

func TestComputeEmptyPosting(t *testing.T) {
	res := Compute("Experience\nEducation\nSkills\n- go", job.Posting{})

	assert.Equal(t, 0, res.KeywordsMatchPercent)
	assert.Equal(t, 100, res.ATSCompatibilityPercent)
	assert.Equal(t, 30, res.OverallMatchPercent)
	assert.Empty(t, res.MatchedKeywords)
	assert.Empty(t, res.MissingKeywords)
}

func TestComputePartitionInvariant(t *testing.T) {
	words := make([]string, 0, 80)
	for i := 0; i < 80; i++ {
		words = append(words, strings.Repeat(string(rune('a'+i%26)), 3+i%5))
	}
	p := job.Posting{Title: "Data Engineer", Description: strings.Join(words, " ")}
	resume := strings.Join(words[:30], " ")

	res := Compute(resume, p)
	list := keywords.Extract(p, keywords.ScoringMax)

	require.Equal(t, len(list), len(res.MatchedKeywords)+len(res.MissingKeywords))
	assert.GreaterOrEqual(t, res.KeywordsMatchPercent, 0)
	assert.LessOrEqual(t, res.KeywordsMatchPercent, 100)
	assert.LessOrEqual(t, len(res.RecommendedKeywords), MaxRecommended)
	assert.Equal(t, res.MissingKeywords[:len(res.RecommendedKeywords)], res.RecommendedKeywords)
}

func TestComputeDeterministic(t *testing.T) {
	first := Compute(sampleResume, samplePosting())
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Compute(sampleResume, samplePosting()))
	}
}

func TestATSSignals(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		expect Signals
	}{
		{name: "empty", text: "", expect: Signals{}},
		{name: "case insensitive sections", text: "EXPERIENCE and Education", expect: Signals{Experience: true, Education: true}},
		{name: "skill singular", text: "core skill", expect: Signals{Skills: true}},
		{name: "dash bullet after newline", text: "intro\n  - item", expect: Signals{Bullets: true}},
		{name: "dot bullet after newline", text: "intro\n• item", expect: Signals{Bullets: true}},
		{name: "bullet on first line is ignored", text: "- item", expect: Signals{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ATSSignals(tt.text))
		})
	}
}

func TestSignalsPercent(t *testing.T) {
	assert.Equal(t, 0, Signals{}.Percent())
	assert.Equal(t, 25, Signals{Skills: true}.Percent())
	assert.Equal(t, 75, Signals{Skills: true, Bullets: true, Education: true}.Percent())
}
