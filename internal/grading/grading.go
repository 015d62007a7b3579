// Package grading scores a resume on its own, without a job posting, across five
// independent heuristic dimensions.
package grading

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ScoreBreakdown holds the five sub-scores and their rounded mean.
type ScoreBreakdown struct {
	ATSCompatibility    int `json:"ats_compatibility"`
	KeywordDensity      int `json:"keyword_density"`
	Formatting          int `json:"formatting"`
	ExperienceHighlight int `json:"experience_highlight"`
	SkillsRelevance     int `json:"skills_relevance"`
	Overall             int `json:"overall"`
}

// Result is a graded resume with the improvement suggestions derived from it.
type Result struct {
	Breakdown   ScoreBreakdown `json:"breakdown"`
	Suggestions []Suggestion   `json:"suggestions"`
}

const (
	shortResumeRunes = 200
	longResumeRunes  = 2000
	minDensityWords  = 50
)

var (
	allCapsRe     = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	bulletLineRe  = regexp.MustCompile(`^[•\-]\s`)
	quantifiedRe  = regexp.MustCompile(`\d+%|\$\d+|\d+\+|\d+x|\d+ years?`)
	timeframeRe   = regexp.MustCompile(`\d{4}|\d+\s+(months?|years?)`)
	skillsVocabRe = regexp.MustCompile(`\b(?:javascript|python|java|react|angular|vue|node|sql|aws|docker|kubernetes|git|agile|scrum|leadership|communication|problem.solving)\b`)
)

var (
	densityActionVerbs = []string{"developed", "created", "implemented", "managed", "led", "designed", "built", "optimized", "improved", "delivered"}
	densityTechTerms   = []string{"javascript", "python", "react", "node", "sql", "api", "database", "cloud", "aws", "docker"}
	achievementVerbs   = []string{"achieved", "increased", "reduced", "improved", "delivered", "managed", "led", "created", "developed"}
	sectionKeywords    = []string{"experience", "education", "skills", "summary", "objective"}
)

// Grade scores resumeText. It keeps no state between calls.
func Grade(resumeText string) Result {
	b := ScoreBreakdown{
		ATSCompatibility:    ATSCompatibility(resumeText),
		KeywordDensity:      KeywordDensity(resumeText),
		Formatting:          Formatting(resumeText),
		ExperienceHighlight: ExperienceHighlight(resumeText),
		SkillsRelevance:     SkillsRelevance(resumeText),
	}
	sum := b.ATSCompatibility + b.KeywordDensity + b.Formatting + b.ExperienceHighlight + b.SkillsRelevance
	b.Overall = int(math.Round(float64(sum) / 5))

	return Result{Breakdown: b, Suggestions: Suggest(b)}
}

// ATSCompatibility penalizes markup entities, unspaced bullets, all-caps words,
// links and resumes that are too short or too long.
func ATSCompatibility(text string) int {
	score := 100

	if strings.Contains(text, "&nbsp;") || strings.Contains(text, "&amp;") {
		score -= 20
	}
	if strings.Contains(text, "•") && !strings.Contains(text, "• ") {
		score -= 10
	}
	if allCapsRe.MatchString(text) {
		score -= 15
	}
	if strings.Contains(text, "http://") || strings.Contains(text, "https://") {
		score -= 10
	}

	length := utf8.RuneCountInString(text)
	if length < shortResumeRunes {
		score -= 30
	}
	if length > longResumeRunes {
		score -= 10
	}

	return clamp(score)
}

// KeywordDensity measures how many known action verbs and tech terms appear
// relative to the number of words longer than three characters.
func KeywordDensity(text string) int {
	lower := strings.ToLower(text)

	totalWords := 0
	for _, w := range strings.Fields(lower) {
		if utf8.RuneCountInString(w) > 3 {
			totalWords++
		}
	}
	if totalWords < minDensityWords {
		return 20
	}

	hits := countPresent(lower, densityActionVerbs) + countPresent(lower, densityTechTerms)
	density := float64(hits) / float64(totalWords) * 100

	return min(100, int(math.Round(density*10)))
}

// Formatting checks for standard sections, the presence of any bullet marker and
// that bullet lines put exactly one whitespace after the marker.
func Formatting(text string) int {
	score := 100
	lower := strings.ToLower(text)

	missing := len(sectionKeywords) - countPresent(lower, sectionKeywords)
	score -= missing * 15

	if !strings.Contains(text, "•") && !strings.Contains(text, "-") && !strings.Contains(text, "*") {
		score -= 20
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "•") && !strings.HasPrefix(trimmed, "-") {
			continue
		}
		if !bulletLineRe.MatchString(line) {
			score -= 5
		}
	}

	return clamp(score)
}

// ExperienceHighlight rewards quantified achievements, achievement verbs and
// explicit timeframes.
func ExperienceHighlight(text string) int {
	score := 100

	if len(quantifiedRe.FindAllString(text, -1)) < 2 {
		score -= 30
	}
	if countPresent(strings.ToLower(text), achievementVerbs) == 0 {
		score -= 25
	}
	if !timeframeRe.MatchString(text) {
		score -= 20
	}

	return clamp(score)
}

// SkillsRelevance counts every occurrence of the known skill vocabulary.
func SkillsRelevance(text string) int {
	matches := skillsVocabRe.FindAllString(strings.ToLower(text), -1)
	return min(100, len(matches)*10)
}

// CompareBest reports the best score after current is recorded against previous.
// Storage of the previous best belongs to the caller.
func CompareBest(previous, current int) (best int, improved bool) {
	if current > previous {
		return current, true
	}
	return previous, false
}

func countPresent(lower string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			n++
		}
	}
	return n
}

func clamp(score int) int {
	return max(0, min(100, score))
}
