// Package match scores a resume against a job posting by keyword coverage and a
// handful of structural ATS signals.
package match

import (
	"math"
	"regexp"

	"github.com/spigell/resume-lens/internal/job"
	"github.com/spigell/resume-lens/internal/keywords"
	"github.com/spigell/resume-lens/internal/textnorm"
)

// Fixed design weights for the overall score. They are not fitted to data.
const (
	KeywordWeight = 0.7
	ATSWeight     = 0.3
)

// MaxRecommended caps the recommended keyword prefix.
const MaxRecommended = 15

var (
	experienceRe = regexp.MustCompile(`(?i)experience`)
	educationRe  = regexp.MustCompile(`(?i)education`)
	skillsRe     = regexp.MustCompile(`(?i)skills?`)
	bulletRe     = regexp.MustCompile(`\n\s*[•-]`)
)

// Result is the outcome of matching one resume against one posting.
type Result struct {
	OverallMatchPercent     int      `json:"overallMatchPercent"`
	ATSCompatibilityPercent int      `json:"atsCompatibilityPercent"`
	KeywordsMatchPercent    int      `json:"keywordsMatchPercent"`
	MatchedKeywords         []string `json:"matchedKeywords"`
	MissingKeywords         []string `json:"missingKeywords"`
	RecommendedKeywords     []string `json:"recommendedKeywords"`
}

// Signals records which structural checks the raw resume text passed.
type Signals struct {
	Experience bool `json:"experience"`
	Education  bool `json:"education"`
	Skills     bool `json:"skills"`
	Bullets    bool `json:"bullets"`
}

// Count returns the number of passed checks.
func (s Signals) Count() int {
	n := 0
	for _, ok := range []bool{s.Experience, s.Education, s.Skills, s.Bullets} {
		if ok {
			n++
		}
	}
	return n
}

// Percent returns the share of passed checks as a rounded percentage.
func (s Signals) Percent() int {
	return percent(s.Count(), 4)
}

// ATSSignals runs the structural checks against the unnormalized resume text.
// A bullet counts only when it opens a line that follows a newline.
func ATSSignals(resumeText string) Signals {
	return Signals{
		Experience: experienceRe.MatchString(resumeText),
		Education:  educationRe.MatchString(resumeText),
		Skills:     skillsRe.MatchString(resumeText),
		Bullets:    bulletRe.MatchString(resumeText),
	}
}

// Compute matches resumeText against p. It is deterministic and never fails:
// a posting with no keywords yields a zero keyword percentage.
func Compute(resumeText string, p job.Posting) Result {
	resumeTokens := textnorm.TokenSet(resumeText)
	list := keywords.Extract(p, keywords.ScoringMax)

	matched := make([]string, 0, len(list))
	missing := make([]string, 0, len(list))
	for _, kw := range list {
		if _, ok := resumeTokens[kw]; ok {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	keywordsPercent := percent(len(matched), len(list))
	atsPercent := ATSSignals(resumeText).Percent()
	overall := int(math.Round(KeywordWeight*float64(keywordsPercent) + ATSWeight*float64(atsPercent)))

	recommended := missing
	if len(recommended) > MaxRecommended {
		recommended = recommended[:MaxRecommended]
	}

	return Result{
		OverallMatchPercent:     overall,
		ATSCompatibilityPercent: atsPercent,
		KeywordsMatchPercent:    keywordsPercent,
		MatchedKeywords:         matched,
		MissingKeywords:         missing,
		RecommendedKeywords:     append([]string(nil), recommended...),
	}
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
